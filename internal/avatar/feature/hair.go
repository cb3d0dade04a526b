package feature

import (
	"fmt"
	"math"

	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

// Hair generates the hair sub-assembly for a style and color. The "none"
// style yields no assembly at all.
func Hair(style domain.HairStyle, color string) *geometry.Node {
	switch domain.ParseHairStyle(string(style)) {
	case domain.HairNone:
		return nil
	case domain.HairSpiky:
		return spikyHair(color)
	case domain.HairBob:
		return bobHair(color)
	case domain.HairPonytail:
		return ponytailHair(color)
	default:
		return shortHair(color)
	}
}

// hairCap is the skull-hugging base shared by every non-none style: a
// sphere slightly wider than the head, flattened and pushed up and back.
func hairCap(color string) *geometry.Node {
	base := geometry.NewPrimitive("hair-cap", geometry.KindSphere, geometry.Dimensions{Radius: 1.15}, color)
	base.Position = geometry.Vec3{Y: 0.3, Z: -0.12}
	base.Scale = geometry.Vec3{X: 1, Y: 0.75, Z: 1}
	return base
}

func shortHair(color string) *geometry.Node {
	hair := geometry.NewGroup("hair")
	hair.AddChild(hairCap(color))

	fringe := geometry.NewPrimitive("hair-fringe", geometry.KindCapsule, geometry.Dimensions{Radius: 0.18, Height: 1.1}, color)
	fringe.Position = geometry.Vec3{Y: 0.78, Z: 0.62}
	fringe.Rotation = geometry.Vec3{Z: math.Pi / 2}
	hair.AddChild(fringe)
	return hair
}

func spikyHair(color string) *geometry.Node {
	hair := geometry.NewGroup("hair")
	hair.AddChild(hairCap(color))

	// Five cones fanned across the crown, alternating lean.
	for i := 0; i < 5; i++ {
		offset := float64(i-2) * 0.38
		spike := geometry.NewPrimitive(
			fmt.Sprintf("hair-spike-%d", i),
			geometry.KindCone,
			geometry.Dimensions{Radius: 0.2, Height: 0.65},
			color,
		)
		spike.Position = geometry.Vec3{X: offset, Y: 1.12 - math.Abs(offset)*0.25, Z: -0.05}
		spike.Rotation = geometry.Vec3{Z: -offset * 0.45}
		hair.AddChild(spike)
	}
	return hair
}

func bobHair(color string) *geometry.Node {
	hair := geometry.NewGroup("hair")

	crown := geometry.NewPrimitive("hair-crown", geometry.KindSphere, geometry.Dimensions{Radius: 1.2}, color)
	crown.Position = geometry.Vec3{Y: 0.22, Z: -0.08}
	crown.Scale = geometry.Vec3{X: 1.02, Y: 0.95, Z: 1.02}
	hair.AddChild(crown)

	for _, side := range []float64{-1, 1} {
		name := "hair-side-left"
		if side > 0 {
			name = "hair-side-right"
		}
		drape := geometry.NewPrimitive(name, geometry.KindCapsule, geometry.Dimensions{Radius: 0.28, Height: 0.9}, color)
		drape.Position = geometry.Vec3{X: side * 0.95, Y: -0.18, Z: -0.05}
		drape.Rotation = geometry.Vec3{Z: side * 0.12}
		hair.AddChild(drape)
	}
	return hair
}

func ponytailHair(color string) *geometry.Node {
	hair := geometry.NewGroup("hair")
	hair.AddChild(hairCap(color))

	tail := geometry.NewPrimitive("hair-tail", geometry.KindCapsule, geometry.Dimensions{Radius: 0.24, Height: 1.15}, color)
	tail.Position = geometry.Vec3{Y: 0.28, Z: -1.18}
	tail.Rotation = geometry.Vec3{X: 0.55}
	hair.AddChild(tail)

	// The tie keeps its accent color regardless of the hair color.
	tie := geometry.NewPrimitive("hair-tie", geometry.KindTorus, geometry.Dimensions{Radius: 0.2, Tube: 0.06}, domain.PonytailTieColor)
	tie.Position = geometry.Vec3{Y: 0.62, Z: -1.02}
	tie.Rotation = geometry.Vec3{X: 0.55}
	hair.AddChild(tie)
	return hair
}
