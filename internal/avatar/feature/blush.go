package feature

import (
	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

// Blush generates the fixed cheek discs. The assembler includes or omits
// the whole assembly based on the configuration flag; there is no partial
// variant.
func Blush() *geometry.Node {
	blush := geometry.NewGroup("blush")
	for _, side := range []float64{-1, 1} {
		name := "blush-left"
		if side > 0 {
			name = "blush-right"
		}
		cheek := geometry.NewPrimitive(name, geometry.KindCircle, geometry.Dimensions{Radius: 0.14}, domain.BlushColor)
		cheek.Position = geometry.Vec3{X: side * 0.58, Y: -0.16, Z: 0.92}
		cheek.Opacity = 0.6
		blush.AddChild(cheek)
	}
	return blush
}
