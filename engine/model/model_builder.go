package model

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithGeometry is an option builder that sets the vertices and triangle indices of the Mesh.
//
// Parameters:
//   - vertices: the unique vertices
//   - indices: triangle list indices into vertices
//
// Returns:
//   - MeshBuilderOption: a function that applies the geometry to a mesh
func WithGeometry(vertices []GPUVertex, indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.vertices = vertices
		m.indices = indices
	}
}
