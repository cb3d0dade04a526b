package feature

import (
	"math"

	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

var mouthCenter = geometry.Vec3{Y: -0.38, Z: 0.98}

// Mouth generates the mouth sub-assembly. Mouth color is fixed; it never
// follows a user-selected color.
func Mouth(style domain.MouthStyle) *geometry.Node {
	switch domain.ParseMouthStyle(string(style)) {
	case domain.MouthNeutral:
		mouth := geometry.NewPrimitive("mouth", geometry.KindBox, geometry.Dimensions{
			Width:  0.32,
			Height: 0.05,
			Depth:  0.04,
		}, domain.MouthColor)
		mouth.Position = mouthCenter
		return mouth
	case domain.MouthOpen:
		mouth := geometry.NewGroup("mouth")

		opening := geometry.NewPrimitive("mouth-opening", geometry.KindSphere, geometry.Dimensions{Radius: 0.16}, domain.MouthColor)
		opening.Position = mouthCenter
		opening.Scale = geometry.Vec3{X: 1, Y: 1.2, Z: 0.5}
		mouth.AddChild(opening)

		tongue := geometry.NewPrimitive("mouth-tongue", geometry.KindSphere, geometry.Dimensions{Radius: 0.09}, domain.TongueColor)
		tongue.Position = mouthCenter.Add(geometry.Vec3{Y: -0.06, Z: 0.06})
		tongue.Scale = geometry.Vec3{X: 1, Y: 0.6, Z: 0.6}
		mouth.AddChild(tongue)
		return mouth
	case domain.MouthCat:
		// Two mirrored half-rings side by side form the stylized "3" shape.
		mouth := geometry.NewGroup("mouth")
		for _, side := range []float64{-1, 1} {
			name := "mouth-curve-left"
			if side > 0 {
				name = "mouth-curve-right"
			}
			curve := geometry.NewPrimitive(name, geometry.KindRing, geometry.Dimensions{
				InnerRadius: 0.08,
				OuterRadius: 0.12,
				Arc:         math.Pi,
				ThetaStart:  math.Pi,
			}, domain.MouthColor)
			curve.Position = mouthCenter.Add(geometry.Vec3{X: side * 0.11})
			mouth.AddChild(curve)
		}
		return mouth
	case domain.MouthSurprised:
		mouth := geometry.NewPrimitive("mouth", geometry.KindTorus, geometry.Dimensions{Radius: 0.12, Tube: 0.04}, domain.MouthColor)
		mouth.Position = mouthCenter
		return mouth
	default:
		// Smile: a single lower-half arc.
		mouth := geometry.NewPrimitive("mouth", geometry.KindRing, geometry.Dimensions{
			InnerRadius: 0.18,
			OuterRadius: 0.24,
			Arc:         math.Pi,
			ThetaStart:  math.Pi,
		}, domain.MouthColor)
		mouth.Position = mouthCenter
		return mouth
	}
}
