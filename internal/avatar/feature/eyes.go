package feature

import (
	"math"

	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

const (
	eyeOffsetX = 0.35
	eyeY       = 0.1
	eyeZ       = 0.95
)

// Eyes generates the eye pair for a style and iris color. Every style
// produces a symmetric pair; there is no "none" eye style.
func Eyes(style domain.EyeStyle, color string) *geometry.Node {
	eyes := geometry.NewGroup("eyes")
	parsed := domain.ParseEyeStyle(string(style))

	for _, side := range []float64{-1, 1} {
		name := "eye-left"
		if side > 0 {
			name = "eye-right"
		}
		center := geometry.Vec3{X: side * eyeOffsetX, Y: eyeY, Z: eyeZ}

		switch parsed {
		case domain.EyesWide, domain.EyesSparkle:
			sclera := geometry.NewPrimitive(name+"-sclera", geometry.KindSphere, geometry.Dimensions{Radius: 0.16}, domain.ScleraColor)
			sclera.Position = center
			eyes.AddChild(sclera)

			pupil := geometry.NewPrimitive(name+"-pupil", geometry.KindSphere, geometry.Dimensions{Radius: 0.09}, color)
			pupil.Position = center.Add(geometry.Vec3{Z: 0.08})
			eyes.AddChild(pupil)

			if parsed == domain.EyesSparkle {
				highlight := geometry.NewPrimitive(name+"-highlight", geometry.KindSphere, geometry.Dimensions{Radius: 0.035}, domain.ScleraColor)
				highlight.Position = center.Add(geometry.Vec3{X: 0.04, Y: 0.05, Z: 0.14})
				eyes.AddChild(highlight)
			}
		case domain.EyesSleepy:
			lid := geometry.NewPrimitive(name, geometry.KindCapsule, geometry.Dimensions{Radius: 0.1, Height: 0.14}, color)
			lid.Position = center
			lid.Rotation = geometry.Vec3{Z: math.Pi / 2}
			lid.Scale = geometry.Vec3{X: 1, Y: 0.5, Z: 1}
			eyes.AddChild(lid)
		default:
			dot := geometry.NewPrimitive(name, geometry.KindSphere, geometry.Dimensions{Radius: 0.12}, color)
			dot.Position = center
			eyes.AddChild(dot)
		}
	}
	return eyes
}
