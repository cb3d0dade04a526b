package geometry

// PrimitiveKind identifies the base solid a node renders as.
type PrimitiveKind string

const (
	// KindGroup is a container node with no geometry of its own.
	KindGroup PrimitiveKind = "group"
	// KindSphere is a UV sphere.
	KindSphere PrimitiveKind = "sphere"
	// KindBox is an axis-aligned box.
	KindBox PrimitiveKind = "box"
	// KindCapsule is a cylinder capped with hemispheres.
	KindCapsule PrimitiveKind = "capsule"
	// KindCone is a cone with its apex on +Y.
	KindCone PrimitiveKind = "cone"
	// KindTorus is a full ring.
	KindTorus PrimitiveKind = "torus"
	// KindCircle is a flat filled disc facing +Z.
	KindCircle PrimitiveKind = "circle"
	// KindRing is a partial or full flat annulus facing +Z.
	KindRing PrimitiveKind = "ring"
)

// Dimensions holds the per-kind sizing parameters of a primitive. Unused
// fields stay zero for kinds that do not need them.
type Dimensions struct {
	Radius      float64 `json:"radius,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Depth       float64 `json:"depth,omitempty"`
	Tube        float64 `json:"tube,omitempty"`
	InnerRadius float64 `json:"innerRadius,omitempty"`
	OuterRadius float64 `json:"outerRadius,omitempty"`
	Arc         float64 `json:"arc,omitempty"`
	ThetaStart  float64 `json:"thetaStart,omitempty"`
}

// Node is one element of an avatar assembly: a primitive or a group, with a
// transform relative to its parent and an ordered child list. Child order is
// stable so repeated assemblies of the same configuration compare equal.
type Node struct {
	Name     string        `json:"name"`
	Kind     PrimitiveKind `json:"kind"`
	Dims     Dimensions    `json:"dims,omitempty"`
	Position Vec3          `json:"position,omitempty"`
	Rotation Vec3          `json:"rotation,omitempty"`
	Scale    Vec3          `json:"scale,omitempty"`
	Color    string        `json:"color,omitempty"`
	Opacity  float64       `json:"opacity,omitempty"`
	Mesh     *Mesh         `json:"mesh,omitempty"`
	Children []*Node       `json:"children,omitempty"`
}

// NewGroup creates a named container node with identity transform.
func NewGroup(name string) *Node {
	return &Node{Name: name, Kind: KindGroup, Scale: One, Opacity: 1}
}

// NewPrimitive creates a named primitive node with identity transform.
func NewPrimitive(name string, kind PrimitiveKind, dims Dimensions, color string) *Node {
	return &Node{Name: name, Kind: kind, Dims: dims, Color: color, Scale: One, Opacity: 1}
}

// AddChild appends children to the node, skipping nils so generators can
// return nothing for "none" styles.
func (n *Node) AddChild(children ...*Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		n.Children = append(n.Children, child)
	}
}

// RemoveAllChildren detaches every child. Required before reassembly so
// repeated edits never accumulate stale nodes.
func (n *Node) RemoveAllChildren() {
	n.Children = nil
}

// Clone returns a deep copy of the subtree. Readers hold clones, so a
// later reassembly of the source tree cannot mutate what they see.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Mesh != nil {
		mesh := Mesh{Vertices: make([]Vec3, len(n.Mesh.Vertices))}
		copy(mesh.Vertices, n.Mesh.Vertices)
		clone.Mesh = &mesh
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return &clone
}

// Equal reports whether two subtrees are structurally identical: same
// names, kinds, transforms, colors, meshes and child order throughout.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Kind != other.Kind || n.Dims != other.Dims {
		return false
	}
	if n.Position != other.Position || n.Rotation != other.Rotation || n.Scale != other.Scale {
		return false
	}
	if n.Color != other.Color || n.Opacity != other.Opacity {
		return false
	}
	if !n.Mesh.equal(other.Mesh) {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
