package fitview

import (
	"github.com/fogleman/simplify"
	"github.com/go-gl/mathgl/mgl64"
)

// SimplifyMeshes decimates every mesh below root to roughly factor times
// its triangle count. A factor outside (0, 1) leaves the meshes untouched.
// Normals are recomputed per face.
func SimplifyMeshes(root *Node, factor float64) (before, after int) {
	if root == nil {
		return 0, 0
	}
	done := map[*Mesh]bool{}
	root.Walk(mgl64.Ident4(), func(n *Node, _ mgl64.Mat4) bool {
		m := n.Mesh
		if m == nil || done[m] {
			return true
		}
		done[m] = true
		before += m.Count()
		if factor > 0 && factor < 1 && m.Count() > 0 {
			SimplifyMesh(m, factor)
		}
		after += m.Count()
		return true
	})
	return before, after
}

// SimplifyMesh replaces m's triangles with a decimated version.
func SimplifyMesh(m *Mesh, factor float64) {
	src := make([]*simplify.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		src[i] = simplify.NewTriangle(toSimplify(t.V1.Position), toSimplify(t.V2.Position), toSimplify(t.V3.Position))
	}
	out := simplify.NewMesh(src).Simplify(factor)
	triangles := make([]*Triangle, 0, len(out.Triangles))
	for _, t := range out.Triangles {
		triangles = append(triangles, NewTriangle(fromSimplify(t.V1), fromSimplify(t.V2), fromSimplify(t.V3)))
	}
	m.Triangles = triangles
	m.Dirty()
}

func toSimplify(v mgl64.Vec3) simplify.Vector {
	return simplify.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func fromSimplify(v simplify.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
