// Package assemble composes feature generator output into a single avatar
// hierarchy.
package assemble

import (
	"github.com/louisbranch/faceforge/internal/avatar/domain"
	"github.com/louisbranch/faceforge/internal/avatar/feature"
	"github.com/louisbranch/faceforge/internal/avatar/geometry"
)

// Assembler rebuilds one avatar hierarchy in place from a configuration.
type Assembler struct {
	root *geometry.Node
}

// New creates an assembler bound to a fresh root node.
func New() *Assembler {
	return &Assembler{root: geometry.NewGroup("avatar")}
}

// Root returns the hierarchy root. The rendering collaborator reads this
// tree as-is.
func (a *Assembler) Root() *geometry.Node {
	return a.root
}

// Assemble replaces the current hierarchy with one generated from cfg.
// Every prior child is detached first so repeated edits never accumulate
// nodes. Sibling order is fixed: head, hair, nose, eyes, eyebrows, mouth,
// blush.
func (a *Assembler) Assemble(cfg domain.Configuration) *geometry.Node {
	cfg = cfg.Normalize()

	a.root.RemoveAllChildren()
	a.root.AddChild(
		feature.Head(cfg.HeadShape, cfg.HeadColor),
		feature.Hair(cfg.HairStyle, cfg.HairColor),
		feature.Nose(cfg.NoseStyle, cfg.HeadColor),
		feature.Eyes(cfg.EyeStyle, cfg.EyeColor),
		feature.Eyebrows(cfg.EyebrowStyle, cfg.HairColor),
		feature.Mouth(cfg.MouthStyle),
	)
	if cfg.HasBlush {
		a.root.AddChild(feature.Blush())
	}
	return a.root
}
