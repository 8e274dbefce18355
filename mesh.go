package fitview

import "github.com/go-gl/mathgl/mgl64"

type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3

	// Output is the clip space position written by a shader.
	Output mgl64.Vec4
}

type Triangle struct {
	V1, V2, V3 Vertex
}

func NewTriangle(v1, v2, v3 mgl64.Vec3) *Triangle {
	t := &Triangle{}
	t.V1.Position = v1
	t.V2.Position = v2
	t.V3.Position = v3
	t.FixNormals()
	return t
}

// Normal returns the face normal, zero for a degenerate triangle.
func (t *Triangle) Normal() mgl64.Vec3 {
	e1 := t.V2.Position.Sub(t.V1.Position)
	e2 := t.V3.Position.Sub(t.V1.Position)
	n := e1.Cross(e2)
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

// FixNormals replaces missing vertex normals with the face normal.
func (t *Triangle) FixNormals() {
	n := t.Normal()
	zero := mgl64.Vec3{}
	if t.V1.Normal == zero {
		t.V1.Normal = n
	}
	if t.V2.Normal == zero {
		t.V2.Normal = n
	}
	if t.V3.Normal == zero {
		t.V3.Normal = n
	}
}

type Mesh struct {
	Triangles []*Triangle
	box       *Box
}

func NewTriangleMesh(triangles []*Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

// BoundingBox returns the mesh extent in its local space. The result is
// cached until Dirty is called.
func (m *Mesh) BoundingBox() Box {
	if m.box != nil {
		return *m.box
	}
	box := EmptyBox()
	for _, t := range m.Triangles {
		box = box.Extend(t.V1.Position).Extend(t.V2.Position).Extend(t.V3.Position)
	}
	m.box = &box
	return box
}

// Dirty drops cached derived data after the triangles were modified.
func (m *Mesh) Dirty() {
	m.box = nil
}

func (m *Mesh) Count() int {
	return len(m.Triangles)
}
