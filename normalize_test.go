package fitview

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func cubeExtent(min, max float64) *Box {
	return &Box{Min: mgl64.Vec3{min, min, min}, Max: mgl64.Vec3{max, max, max}}
}

func assertNormalized(t *testing.T, root *Node) {
	t.Helper()
	box := root.BoundingBox()
	c := box.Center()
	for i := 0; i < 3; i++ {
		if !scalar.EqualWithinAbs(c[i], 0, tol) {
			t.Fatalf("center = %v, want origin (box %+v)", c, box)
		}
	}
	if !scalar.EqualWithinAbs(box.MaxDim(), TargetSize, tol) {
		t.Fatalf("max dim = %.12f, want %v", box.MaxDim(), TargetSize)
	}
}

func TestNormalizeSingleMesh(t *testing.T) {
	root := NewGroup("model")
	tri := NewTriangleMesh([]*Triangle{NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{4, 0, 0}, mgl64.Vec3{0, 2, 0})})
	n := NewNode("tri", tri)
	n.Position = mgl64.Vec3{10, 0, 0}
	root.AddChild(n)

	fit := Normalize(root)
	if !fit.Applied || fit.Nodes != 1 {
		t.Fatalf("unexpected fit %+v", fit)
	}
	if fit.Scale != 0.5 || fit.Center != (mgl64.Vec3{12, 1, 0}) {
		t.Fatalf("scale %v center %v, want 0.5 and (12,1,0)", fit.Scale, fit.Center)
	}
	if n.Position != (mgl64.Vec3{-1, -0.5, 0}) || n.Scale != (mgl64.Vec3{0.5, 0.5, 0.5}) {
		t.Fatalf("position %v scale %v", n.Position, n.Scale)
	}
	if !root.Group || root.Scale != (mgl64.Vec3{1, 1, 1}) || root.Position != (mgl64.Vec3{}) {
		t.Fatal("pure group root must not be modified")
	}
	assertNormalized(t, root)
}

func TestNormalizeNestedTransforms(t *testing.T) {
	root := NewGroup("model")
	parent := NewNode("parent", nil)
	parent.Position = mgl64.Vec3{1, 2, 3}
	parent.Rotation = mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0})
	parent.Scale = mgl64.Vec3{2, 3, 0.5}
	child := NewNode("child", nil)
	child.Position = mgl64.Vec3{5, 0, 0}
	child.Extent = &Box{Min: mgl64.Vec3{-1, -2, -3}, Max: mgl64.Vec3{1, 4, 3}}
	sibling := NewNode("sibling", nil)
	sibling.Extent = cubeExtent(-0.5, 0.5)
	parent.AddChild(child)
	parent.AddChild(sibling)
	root.AddChild(parent)

	childPos, childScale := child.Position, child.Scale
	fit := Normalize(root)
	if !fit.Applied || fit.Nodes != 1 {
		t.Fatalf("only the top transformable node should absorb the fit, got %+v", fit)
	}
	if child.Position != childPos || child.Scale != childScale {
		t.Fatal("descendants of a transformable node must inherit the fit unchanged")
	}
	assertNormalized(t, root)
}

func TestNormalizeSiblingMeshes(t *testing.T) {
	root := NewGroup("meshes")
	a := NewNode("a", nil)
	a.Extent = cubeExtent(0, 1)
	a.Position = mgl64.Vec3{-20, 0, 0}
	b := NewNode("b", nil)
	b.Extent = cubeExtent(0, 1)
	b.Position = mgl64.Vec3{30, 5, -2}
	b.Scale = mgl64.Vec3{3, 3, 3}
	root.AddChild(a)
	root.AddChild(b)

	fit := Normalize(root)
	if fit.Nodes != 2 {
		t.Fatalf("fit applied to %d nodes, want 2", fit.Nodes)
	}
	assertNormalized(t, root)
}

func TestNormalizeIdempotent(t *testing.T) {
	root := NewGroup("model")
	n := NewNode("n", nil)
	n.Extent = &Box{Min: mgl64.Vec3{3, -7, 1}, Max: mgl64.Vec3{9, 2, 4}}
	n.Rotation = mgl64.QuatRotate(0.3, mgl64.Vec3{1, 1, 0}.Normalize())
	root.AddChild(n)

	Normalize(root)
	assertNormalized(t, root)
	second := Normalize(root)
	assertNormalized(t, root)
	if !scalar.EqualWithinAbs(second.Scale, 1, tol) {
		t.Fatalf("second scale = %v, want 1", second.Scale)
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	n := NewNode("point", nil)
	n.Position = mgl64.Vec3{3, 3, 3}
	n.Extent = &Box{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{1, 1, 1}}

	fit := Normalize(n)
	if fit.Applied || fit.Nodes != 0 {
		t.Fatalf("degenerate input must not be normalized, got %+v", fit)
	}
	if n.Position != (mgl64.Vec3{3, 3, 3}) || n.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Fatalf("node changed: position %v scale %v", n.Position, n.Scale)
	}
	for i := 0; i < 3; i++ {
		if math.IsNaN(n.Position[i]) || math.IsInf(n.Scale[i], 0) {
			t.Fatal("NaN or Inf leaked into the node")
		}
	}
}

func TestNormalizeEmptyHierarchy(t *testing.T) {
	root := NewGroup("empty")
	root.AddChild(NewGroup("nothing"))
	if fit := Normalize(root); fit.Applied {
		t.Fatalf("empty hierarchy must be skipped, got %+v", fit)
	}
	if fit := Normalize(nil); fit.Applied {
		t.Fatal("nil root must be skipped")
	}
}

func TestNormalizeNonFiniteExtent(t *testing.T) {
	n := NewNode("inf", nil)
	n.Extent = &Box{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{math.Inf(1), 1, 1}}
	if fit := Normalize(n); fit.Applied {
		t.Fatalf("infinite extent must be skipped, got %+v", fit)
	}
	if n.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Fatalf("scale changed to %v", n.Scale)
	}
}

func TestNormalizeGroupWithExtent(t *testing.T) {
	root := NewGroup("root")
	root.Extent = cubeExtent(4, 8)
	child := NewNode("child", nil)
	child.Extent = cubeExtent(5, 6)
	root.AddChild(child)

	fit := Normalize(root)
	if fit.Nodes != 1 {
		t.Fatalf("group with geometry should absorb the fit, got %+v", fit)
	}
	assertNormalized(t, root)
}

func TestNodeBoundingBoxSkipsNodesWithoutExtent(t *testing.T) {
	root := NewGroup("root")
	holder := NewNode("holder", nil)
	holder.Position = mgl64.Vec3{100, 100, 100}
	leaf := NewNode("leaf", nil)
	leaf.Extent = cubeExtent(-1, 1)
	holder.AddChild(leaf)
	root.AddChild(holder)

	box := root.BoundingBox()
	if box.Min != (mgl64.Vec3{99, 99, 99}) || box.Max != (mgl64.Vec3{101, 101, 101}) {
		t.Fatalf("unexpected box %+v", box)
	}
	if root.Count() != 3 {
		t.Fatalf("count = %d, want 3", root.Count())
	}
}
