package geometry

// Mesh is an explicit vertex list for primitives that need per-vertex
// deformation. Primitives without a Mesh are described fully by their
// Dimensions.
type Mesh struct {
	Vertices []Vec3 `json:"vertices"`
}

func (m *Mesh) equal(other *Mesh) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.Vertices) != len(other.Vertices) {
		return false
	}
	for i := range m.Vertices {
		if m.Vertices[i] != other.Vertices[i] {
			return false
		}
	}
	return true
}

// BoxMesh builds a segmented axis-aligned box centered on the origin. Each
// face is a (segments+1)² grid of vertices; shared edges and corners appear
// once per face, which is fine for deformation since duplicates deform
// identically.
func BoxMesh(width, height, depth float64, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}
	halfW, halfH, halfD := width/2, height/2, depth/2
	steps := segments + 1

	mesh := &Mesh{Vertices: make([]Vec3, 0, 6*steps*steps)}
	grid := func(place func(u, v float64) Vec3) {
		for i := 0; i < steps; i++ {
			for j := 0; j < steps; j++ {
				u := -1 + 2*float64(i)/float64(segments)
				v := -1 + 2*float64(j)/float64(segments)
				mesh.Vertices = append(mesh.Vertices, place(u, v))
			}
		}
	}

	grid(func(u, v float64) Vec3 { return Vec3{X: halfW, Y: u * halfH, Z: v * halfD} })  // +X
	grid(func(u, v float64) Vec3 { return Vec3{X: -halfW, Y: u * halfH, Z: v * halfD} }) // -X
	grid(func(u, v float64) Vec3 { return Vec3{X: u * halfW, Y: halfH, Z: v * halfD} })  // +Y
	grid(func(u, v float64) Vec3 { return Vec3{X: u * halfW, Y: -halfH, Z: v * halfD} }) // -Y
	grid(func(u, v float64) Vec3 { return Vec3{X: u * halfW, Y: v * halfH, Z: halfD} })  // +Z
	grid(func(u, v float64) Vec3 { return Vec3{X: u * halfW, Y: v * halfH, Z: -halfD} }) // -Z

	return mesh
}

// Inflate moves every vertex part of the way toward the point at unit
// distance along its own direction from the origin. For a box larger than
// the unit sphere this rounds the silhouette: the farther a vertex sits
// from the origin, the more it moves, so corners soften more than face
// centers. The zero vector has no direction and is left in place.
func Inflate(mesh *Mesh, factor float64) *Mesh {
	if mesh == nil {
		return nil
	}
	inflated := &Mesh{Vertices: make([]Vec3, len(mesh.Vertices))}
	for i, vertex := range mesh.Vertices {
		if vertex.Length() == 0 {
			inflated.Vertices[i] = vertex
			continue
		}
		inflated.Vertices[i] = vertex.Lerp(vertex.Normalize(), factor)
	}
	return inflated
}
