package fitview

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TargetSize is the edge length of the cube a normalized model fits into.
const TargetSize = 2.0

// Fit describes the transform Normalize derived for a hierarchy.
type Fit struct {
	Box     Box // bounding box before normalization
	Center  mgl64.Vec3
	MaxDim  float64
	Scale   float64
	Applied bool
	Nodes   int // transformable nodes that received the fit
}

// Normalize centers root at the origin and scales it uniformly so that its
// largest dimension equals TargetSize. The fit is applied to the top-most
// transformable nodes; groups are descended and descendants of a
// transformable node inherit the fit through it. Degenerate input (no
// geometry, zero or non-finite extent) is left untouched.
func Normalize(root *Node) Fit {
	if root == nil {
		log.Printf("fitview: normalize called with nil root")
		return Fit{}
	}
	box := root.BoundingBox()
	fit := Fit{Box: box, Center: box.Center(), MaxDim: box.MaxDim()}
	if box.IsEmpty() {
		log.Printf("fitview: %q has no geometry, skipping normalization", root.Name)
		return fit
	}
	if fit.MaxDim == 0 || math.IsInf(fit.MaxDim, 0) || math.IsNaN(fit.MaxDim) {
		log.Printf("fitview: %q has degenerate extent %v, skipping normalization", root.Name, box.Size())
		return fit
	}

	fit.Scale = TargetSize / fit.MaxDim
	offset := fit.Center.Mul(fit.Scale)
	applyFit(root, fit.Scale, offset, &fit.Nodes)
	fit.Applied = true
	return fit
}

// applyFit maps every point p of n's subtree to scale*p - offset. Pure
// groups have identity transforms, so for the first transformable node on
// each path that is position*scale - offset with its scale multiplied by scale.
func applyFit(n *Node, scale float64, offset mgl64.Vec3, applied *int) {
	if !n.pureGroup() {
		n.Scale = n.Scale.Mul(scale)
		n.Position = n.Position.Mul(scale).Sub(offset)
		*applied++
		return
	}
	for _, c := range n.Children {
		applyFit(c, scale, offset, applied)
	}
}
