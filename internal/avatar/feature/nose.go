package feature

import (
	"math"

	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

// noseDarkenFactor derives the nose color from the head color so the two
// always stay in step. The nose never stores a color of its own.
const noseDarkenFactor = 0.9

// Nose generates the nose sub-assembly. Its color is derived from the head
// color by uniform darkening.
func Nose(style domain.NoseStyle, headColor string) *geometry.Node {
	color := domain.DarkenHexColor(headColor, noseDarkenFactor)

	switch domain.ParseNoseStyle(string(style)) {
	case domain.NoseNone:
		return nil
	case domain.NoseRound:
		nose := geometry.NewPrimitive("nose", geometry.KindSphere, geometry.Dimensions{Radius: 0.14}, color)
		nose.Position = geometry.Vec3{Y: 0, Z: 1.05}
		return nose
	case domain.NosePointed:
		nose := geometry.NewPrimitive("nose", geometry.KindCone, geometry.Dimensions{Radius: 0.1, Height: 0.28}, color)
		nose.Position = geometry.Vec3{Y: 0.02, Z: 1.08}
		nose.Rotation = geometry.Vec3{X: math.Pi / 2}
		return nose
	default:
		nose := geometry.NewPrimitive("nose", geometry.KindSphere, geometry.Dimensions{Radius: 0.09}, color)
		nose.Position = geometry.Vec3{Y: 0.05, Z: 1.05}
		return nose
	}
}
