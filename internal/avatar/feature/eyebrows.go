package feature

import (
	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

const (
	browOffsetX = 0.35
	browY       = 0.52
	browZ       = 0.98
	// Tilt signs are mirrored across the pair: angry angles the inner ends
	// down, worried angles them up.
	angryTilt   = 0.4
	worriedTilt = -0.35
)

// Eyebrows generates the eyebrow pair. Eyebrows have no color field of
// their own; they always take the hair color.
func Eyebrows(style domain.EyebrowStyle, hairColor string) *geometry.Node {
	parsed := domain.ParseEyebrowStyle(string(style))
	if parsed == domain.BrowsNone {
		return nil
	}

	height := 0.07
	if parsed == domain.BrowsThick {
		height = 0.14
	}
	tilt := 0.0
	switch parsed {
	case domain.BrowsAngry:
		tilt = angryTilt
	case domain.BrowsWorried:
		tilt = worriedTilt
	}

	brows := geometry.NewGroup("eyebrows")
	for _, side := range []float64{-1, 1} {
		name := "brow-left"
		if side > 0 {
			name = "brow-right"
		}
		brow := geometry.NewPrimitive(name, geometry.KindBox, geometry.Dimensions{
			Width:  0.3,
			Height: height,
			Depth:  0.06,
		}, hairColor)
		brow.Position = geometry.Vec3{X: side * browOffsetX, Y: browY, Z: browZ}
		brow.Rotation = geometry.Vec3{Z: side * tilt}
		brows.AddChild(brow)
	}
	return brows
}
