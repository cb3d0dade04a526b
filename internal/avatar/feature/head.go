// Package feature holds the avatar feature generators: pure functions that
// map a style and color to a sub-assembly of geometry nodes. Generators
// never fail; a style outside the taxonomy produces the default style's
// sub-assembly, and "none" styles produce nil.
package feature

import (
	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

const (
	headRadius = 1.1
	// headBoxSize keeps every vertex outside the unit sphere so inflation
	// pulls the silhouette inward, corners most.
	headBoxSize       = 2.2
	headBoxSegments   = 8
	headInflateFactor = 0.15
)

// ovalHeadScale is the fixed non-uniform scale applied to the round base
// solid to produce the oval head.
var ovalHeadScale = geometry.Vec3{X: 0.85, Y: 1.1, Z: 0.9}

// Head generates the head sub-assembly for a shape and skin color.
func Head(shape domain.HeadShape, color string) *geometry.Node {
	switch domain.ParseHeadShape(string(shape)) {
	case domain.HeadOval:
		head := geometry.NewPrimitive("head", geometry.KindSphere, geometry.Dimensions{Radius: headRadius}, color)
		head.Scale = ovalHeadScale
		return head
	case domain.HeadSquare:
		head := geometry.NewPrimitive("head", geometry.KindBox, geometry.Dimensions{
			Width:  headBoxSize,
			Height: headBoxSize,
			Depth:  headBoxSize,
		}, color)
		head.Mesh = geometry.Inflate(geometry.BoxMesh(headBoxSize, headBoxSize, headBoxSize, headBoxSegments), headInflateFactor)
		return head
	default:
		return geometry.NewPrimitive("head", geometry.KindSphere, geometry.Dimensions{Radius: headRadius}, color)
	}
}
