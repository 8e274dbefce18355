package fitview

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF loads a .gltf or .glb file into a node hierarchy rooted at a
// group named after the file.
func LoadGLTF(path string) (*Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	return NodeFromGLTF(doc, path)
}

// NodeFromGLTF converts the document's default scene, or its first scene
// when none is marked default, into a node hierarchy. Documents without
// scenes contribute every node that is not a child of another node.
func NodeFromGLTF(doc *gltf.Document, name string) (*Node, error) {
	b := &gltfBuilder{doc: doc, meshes: map[int]*Mesh{}, visiting: map[int]bool{}}
	root := NewGroup(name)
	for _, i := range sceneRoots(doc) {
		n, err := b.node(i)
		if err != nil {
			return nil, err
		}
		root.AddChild(n)
	}
	if b.triangles == 0 {
		return nil, ErrNoGeometry
	}
	return root, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			s = int(*doc.Scene)
		}
		roots := make([]int, len(doc.Scenes[s].Nodes))
		for k, i := range doc.Scenes[s].Nodes {
			roots[k] = int(i)
		}
		return roots
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(isChild) {
				isChild[int(c)] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

type gltfBuilder struct {
	doc       *gltf.Document
	meshes    map[int]*Mesh
	visiting  map[int]bool
	triangles int
}

func (b *gltfBuilder) node(i int) (*Node, error) {
	if i < 0 || i >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("gltf: node index %d out of range", i)
	}
	if b.visiting[i] {
		return nil, fmt.Errorf("gltf: node %d is its own ancestor", i)
	}
	b.visiting[i] = true
	defer delete(b.visiting, i)

	src := b.doc.Nodes[i]
	n := NewNode(src.Name, nil)
	var m mgl64.Mat4
	for k, x := range src.MatrixOrDefault() {
		m[k] = float64(x)
	}
	if m != mgl64.Ident4() {
		n.Position, n.Rotation, n.Scale = decompose(m)
	} else {
		t := src.TranslationOrDefault()
		r := src.RotationOrDefault()
		s := src.ScaleOrDefault()
		n.Position = mgl64.Vec3{float64(t[0]), float64(t[1]), float64(t[2])}
		n.Rotation = mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}
		n.Scale = mgl64.Vec3{float64(s[0]), float64(s[1]), float64(s[2])}
	}

	if src.Mesh != nil {
		mesh, err := b.mesh(int(*src.Mesh))
		if err != nil {
			return nil, err
		}
		n.Mesh = mesh
	}
	for _, c := range src.Children {
		child, err := b.node(int(c))
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// decompose splits an affine matrix without shear into T, R and S.
func decompose(m mgl64.Mat4) (mgl64.Vec3, mgl64.Quat, mgl64.Vec3) {
	t := mgl64.Vec3{m[12], m[13], m[14]}
	s := mgl64.Vec3{
		m.Col(0).Vec3().Len(),
		m.Col(1).Vec3().Len(),
		m.Col(2).Vec3().Len(),
	}
	if m.Mat3().Det() < 0 {
		s[0] = -s[0]
	}
	r := m
	for c := 0; c < 3; c++ {
		if s[c] == 0 {
			return t, mgl64.QuatIdent(), s
		}
		for row := 0; row < 3; row++ {
			r[c*4+row] /= s[c]
		}
	}
	r[12], r[13], r[14] = 0, 0, 0
	return t, mgl64.Mat4ToQuat(r).Normalize(), s
}

func (b *gltfBuilder) accessor(i int) (*gltf.Accessor, error) {
	if i < 0 || i >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("gltf: accessor index %d out of range", i)
	}
	return b.doc.Accessors[i], nil
}

// mesh merges the triangle primitives of a glTF mesh. Meshes referenced by
// several nodes are converted once and shared.
func (b *gltfBuilder) mesh(i int) (*Mesh, error) {
	if m, ok := b.meshes[i]; ok {
		return m, nil
	}
	if i < 0 || i >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("gltf: mesh index %d out of range", i)
	}
	doc := b.doc
	var triangles []*Triangle
	for _, primitive := range doc.Meshes[i].Primitives {
		if primitive.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := primitive.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		posAcc, err := b.accessor(int(posIdx))
		if err != nil {
			return nil, err
		}
		var normAcc, idxAcc *gltf.Accessor
		if normIdx, ok := primitive.Attributes[gltf.NORMAL]; ok {
			if normAcc, err = b.accessor(int(normIdx)); err != nil {
				return nil, err
			}
		}
		if primitive.Indices != nil {
			if idxAcc, err = b.accessor(int(*primitive.Indices)); err != nil {
				return nil, err
			}
		}

		positions, err := modeler.ReadPosition(doc, posAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("gltf: mesh %d positions: %w", i, err)
		}

		var normals [][3]float32
		if normAcc != nil {
			// face normals are used when the accessor cannot be read
			if normals, err = modeler.ReadNormal(doc, normAcc, nil); err != nil {
				log.Printf("fitview: gltf: mesh %d normals: %v", i, err)
				normals = nil
			}
		}

		var indices []uint32
		if idxAcc != nil {
			indices, err = modeler.ReadIndices(doc, idxAcc, nil)
			if err != nil {
				return nil, fmt.Errorf("gltf: mesh %d indices: %w", i, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for k := range indices {
				indices[k] = uint32(k)
			}
		}

		vertex := func(k uint32) (Vertex, bool) {
			if int(k) >= len(positions) {
				return Vertex{}, false
			}
			p := positions[k]
			v := Vertex{Position: mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}}
			if int(k) < len(normals) {
				n := normals[k]
				v.Normal = mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])}
			}
			return v, true
		}
		for k := 0; k+2 < len(indices); k += 3 {
			v1, ok1 := vertex(indices[k])
			v2, ok2 := vertex(indices[k+1])
			v3, ok3 := vertex(indices[k+2])
			if !ok1 || !ok2 || !ok3 {
				return nil, fmt.Errorf("gltf: mesh %d index out of range", i)
			}
			t := &Triangle{V1: v1, V2: v2, V3: v3}
			t.FixNormals()
			triangles = append(triangles, t)
		}
	}
	m := NewTriangleMesh(triangles)
	b.meshes[i] = m
	b.triangles += len(triangles)
	return m, nil
}
