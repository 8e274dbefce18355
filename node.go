package fitview

import "github.com/go-gl/mathgl/mgl64"

// Node is an entry in the scene hierarchy. A node either groups its
// children without a transform of its own (Group) or carries a local
// position, rotation and scale that its children inherit.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Children []*Node
	Mesh     *Mesh

	// Extent overrides the mesh bounding box as the node's local extent.
	Extent *Box

	// Group marks a node that only holds children. A group that was given
	// a transform or an extent is still treated as transformable.
	Group bool
}

// NewGroup returns a grouping node with an identity transform.
func NewGroup(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
		Group:    true,
	}
}

// NewNode returns a transformable node at the origin with unit scale.
func NewNode(name string, mesh *Mesh) *Node {
	return &Node{
		Name:     name,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
		Mesh:     mesh,
	}
}

func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
}

// LocalMatrix returns T * R * S.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	s := mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(n.Rotation.Normalize().Mat4()).Mul4(s)
}

// pureGroup reports whether n contributes neither geometry nor a transform.
func (n *Node) pureGroup() bool {
	if !n.Group {
		return false
	}
	if _, ok := n.LocalExtent(); ok {
		return false
	}
	return n.LocalMatrix().ApproxEqual(mgl64.Ident4())
}

// LocalExtent returns the node's own geometric extent and whether it has one.
func (n *Node) LocalExtent() (Box, bool) {
	if n.Extent != nil {
		return *n.Extent, !n.Extent.IsEmpty()
	}
	if n.Mesh != nil {
		box := n.Mesh.BoundingBox()
		return box, !box.IsEmpty()
	}
	return Box{}, false
}

// Walk visits n and its descendants depth first, passing each node's
// accumulated world matrix. Returning false from fn skips the node's children.
func (n *Node) Walk(parent mgl64.Mat4, fn func(node *Node, world mgl64.Mat4) bool) {
	world := parent.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.Children {
		c.Walk(world, fn)
	}
}

// BoundingBox returns the world space box spanning n and all descendants.
// Nodes without an extent contribute nothing but their children still do.
func (n *Node) BoundingBox() Box {
	box := EmptyBox()
	n.Walk(mgl64.Ident4(), func(node *Node, world mgl64.Mat4) bool {
		if local, ok := node.LocalExtent(); ok {
			box = box.Union(local.Transform(world))
		}
		return true
	})
	return box
}

// Count returns the number of nodes in the hierarchy, n included.
func (n *Node) Count() int {
	count := 0
	n.Walk(mgl64.Ident4(), func(*Node, mgl64.Mat4) bool {
		count++
		return true
	})
	return count
}
