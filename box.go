package fitview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// EmptyBox returns a box that contains nothing. Extending it with a point
// yields a zero-size box around that point.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// BoxForPoints returns the smallest box containing every point.
func BoxForPoints(points []mgl64.Vec3) Box {
	box := EmptyBox()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// BoxForBoxes returns the union of boxes.
func BoxForBoxes(boxes []Box) Box {
	box := EmptyBox()
	for _, b := range boxes {
		box = box.Union(b)
	}
	return box
}

// IsEmpty reports whether the box contains no point at all. A flat or
// single point box is not empty.
func (a Box) IsEmpty() bool {
	return a.Min[0] > a.Max[0] || a.Min[1] > a.Max[1] || a.Min[2] > a.Max[2]
}

func (a Box) Extend(p mgl64.Vec3) Box {
	return Box{
		Min: mgl64.Vec3{math.Min(a.Min[0], p[0]), math.Min(a.Min[1], p[1]), math.Min(a.Min[2], p[2])},
		Max: mgl64.Vec3{math.Max(a.Max[0], p[0]), math.Max(a.Max[1], p[1]), math.Max(a.Max[2], p[2])},
	}
}

func (a Box) Union(b Box) Box {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return a.Extend(b.Min).Extend(b.Max)
}

func (a Box) Size() mgl64.Vec3 {
	if a.IsEmpty() {
		return mgl64.Vec3{}
	}
	return a.Max.Sub(a.Min)
}

// Center is min + size/2, matching how the fit translation is derived.
func (a Box) Center() mgl64.Vec3 {
	if a.IsEmpty() {
		return mgl64.Vec3{}
	}
	return a.Min.Add(a.Size().Mul(0.5))
}

// MaxDim returns the largest component of Size.
func (a Box) MaxDim() float64 {
	s := a.Size()
	return math.Max(s[0], math.Max(s[1], s[2]))
}

func (a Box) Corners() []mgl64.Vec3 {
	return []mgl64.Vec3{
		a.Min,
		{a.Max[0], a.Min[1], a.Min[2]},
		{a.Max[0], a.Max[1], a.Min[2]},
		{a.Min[0], a.Max[1], a.Min[2]},
		{a.Min[0], a.Min[1], a.Max[2]},
		{a.Max[0], a.Min[1], a.Max[2]},
		a.Max,
		{a.Min[0], a.Max[1], a.Max[2]},
	}
}

// Transform returns the bounding box of the box's corners after applying m.
func (a Box) Transform(m mgl64.Mat4) Box {
	if a.IsEmpty() {
		return a
	}
	box := EmptyBox()
	for _, c := range a.Corners() {
		box = box.Extend(mgl64.TransformCoordinate(c, m))
	}
	return box
}
