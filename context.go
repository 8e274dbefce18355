package fitview

import (
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

type Face int

const (
	_ Face = iota
	FaceCW
	FaceCCW
)

type Cull int

const (
	_ Cull = iota
	CullNone
	CullFront
	CullBack
)

// Context is a software rasterization target with color and depth buffers.
type Context struct {
	Width       int
	Height      int
	Shader      Shader
	ColorBuffer *image.NRGBA
	DepthBuffer []float64
	ClearColor  Color
	ReadDepth   bool
	WriteDepth  bool
	FrontFace   Face
	Cull        Cull
	locks       []sync.Mutex
}

func NewContext(width, height int, shader Shader) *Context {
	dc := &Context{}
	dc.Width = width
	dc.Height = height
	dc.Shader = shader
	dc.ColorBuffer = image.NewNRGBA(image.Rect(0, 0, width, height))
	dc.DepthBuffer = make([]float64, width*height)
	dc.ClearColor = Transparent
	dc.ReadDepth = true
	dc.WriteDepth = true
	dc.FrontFace = FaceCCW
	dc.Cull = CullBack
	dc.locks = make([]sync.Mutex, 256)
	dc.ClearDepthBuffer()
	return dc
}

func (dc *Context) Image() image.Image {
	return dc.ColorBuffer
}

// ClearColorBufferWith fills the first row and copies it to the others.
func (dc *Context) ClearColorBufferWith(c Color) {
	nrgba := c.NRGBA()
	row := make([]uint8, dc.Width*4)
	for x := 0; x < dc.Width; x++ {
		i := x * 4
		row[i+0] = nrgba.R
		row[i+1] = nrgba.G
		row[i+2] = nrgba.B
		row[i+3] = nrgba.A
	}
	pix := dc.ColorBuffer.Pix
	stride := dc.ColorBuffer.Stride
	for y := 0; y < dc.Height; y++ {
		copy(pix[y*stride:], row)
	}
}

func (dc *Context) ClearColorBuffer() {
	dc.ClearColorBufferWith(dc.ClearColor)
}

func (dc *Context) ClearDepthBuffer() {
	for i := range dc.DepthBuffer {
		dc.DepthBuffer[i] = math.MaxFloat64
	}
}

func edge(a, b, c mgl64.Vec3) float64 {
	return (b[0]-c[0])*(a[1]-c[1]) - (b[1]-c[1])*(a[0]-c[0])
}

// screen maps normalized device coordinates to pixel coordinates with y
// pointing down.
func (dc *Context) screen(ndc mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		(ndc[0] + 1) / 2 * float64(dc.Width),
		(1 - ndc[1]) / 2 * float64(dc.Height),
		ndc[2],
	}
}

func (dc *Context) rasterize(v0, v1, v2 Vertex, s0, s1, s2 mgl64.Vec3) {
	area := edge(s0, s1, s2)
	if area == 0 {
		return
	}
	ra := 1 / area

	x0 := clampInt(int(math.Floor(math.Min(s0[0], math.Min(s1[0], s2[0])))), 0, dc.Width-1)
	x1 := clampInt(int(math.Ceil(math.Max(s0[0], math.Max(s1[0], s2[0])))), 0, dc.Width-1)
	y0 := clampInt(int(math.Floor(math.Min(s0[1], math.Min(s1[1], s2[1])))), 0, dc.Height-1)
	y1 := clampInt(int(math.Ceil(math.Max(s0[1], math.Max(s1[1], s2[1])))), 0, dc.Height-1)

	r0 := 1 / v0.Output[3]
	r1 := 1 / v1.Output[3]
	r2 := 1 / v2.Output[3]

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := mgl64.Vec3{float64(x) + 0.5, float64(y) + 0.5, 0}
			b0 := edge(s1, s2, p) * ra
			b1 := edge(s2, s0, p) * ra
			b2 := edge(s0, s1, p) * ra
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			i := y*dc.Width + x
			z := b0*s0[2] + b1*s1[2] + b2*s2[2]

			// perspective correct weights
			w0, w1, w2 := b0*r0, b1*r1, b2*r2
			ws := 1 / (w0 + w1 + w2)
			v := interpolateVertexes(v0, v1, v2, w0*ws, w1*ws, w2*ws)
			c := dc.Shader.Fragment(v)
			if c.A <= 0 {
				continue
			}

			lock := &dc.locks[(x+y)&255]
			lock.Lock()
			if !dc.ReadDepth || z <= dc.DepthBuffer[i] {
				if dc.WriteDepth {
					dc.DepthBuffer[i] = z
				}
				dc.setPixel(i*4, c)
			}
			lock.Unlock()
		}
	}
}

func (dc *Context) setPixel(i int, c Color) {
	pix := dc.ColorBuffer.Pix
	nrgba := c.NRGBA()
	if nrgba.A == 0xff {
		pix[i+0] = nrgba.R
		pix[i+1] = nrgba.G
		pix[i+2] = nrgba.B
		pix[i+3] = nrgba.A
		return
	}
	a := float64(nrgba.A) / 0xff
	for k, s := range [3]uint8{nrgba.R, nrgba.G, nrgba.B} {
		pix[i+k] = uint8(float64(s)*a + float64(pix[i+k])*(1-a))
	}
	pix[i+3] = uint8(math.Min(0xff, float64(nrgba.A)+float64(pix[i+3])*(1-a)))
}

func interpolateVertexes(v1, v2, v3 Vertex, b0, b1, b2 float64) Vertex {
	v := Vertex{}
	v.Position = v1.Position.Mul(b0).Add(v2.Position.Mul(b1)).Add(v3.Position.Mul(b2))
	v.Normal = safeNormalize(v1.Normal.Mul(b0).Add(v2.Normal.Mul(b1)).Add(v3.Normal.Mul(b2)))
	v.Output = v1.Output.Mul(b0).Add(v2.Output.Mul(b1)).Add(v3.Output.Mul(b2))
	return v
}

// outside reports whether all three vertices lie beyond the same clip
// plane, or any of them is behind the near plane.
func outside(v1, v2, v3 Vertex) bool {
	for _, v := range [3]Vertex{v1, v2, v3} {
		if v.Output[3] <= 0 || v.Output[2] < -v.Output[3] {
			return true
		}
	}
	for axis := 0; axis < 3; axis++ {
		if v1.Output[axis] > v1.Output[3] && v2.Output[axis] > v2.Output[3] && v3.Output[axis] > v3.Output[3] {
			return true
		}
		if v1.Output[axis] < -v1.Output[3] && v2.Output[axis] < -v2.Output[3] && v3.Output[axis] < -v3.Output[3] {
			return true
		}
	}
	return false
}

func (dc *Context) DrawTriangle(t *Triangle) {
	v1 := dc.Shader.Vertex(t.V1)
	v2 := dc.Shader.Vertex(t.V2)
	v3 := dc.Shader.Vertex(t.V3)
	if outside(v1, v2, v3) {
		return
	}

	ndc0 := v1.Output.Mul(1 / v1.Output[3]).Vec3()
	ndc1 := v2.Output.Mul(1 / v2.Output[3]).Vec3()
	ndc2 := v3.Output.Mul(1 / v3.Output[3]).Vec3()

	if dc.Cull != CullNone {
		area := (ndc1[0]-ndc0[0])*(ndc2[1]-ndc0[1]) - (ndc2[0]-ndc0[0])*(ndc1[1]-ndc0[1])
		if dc.FrontFace == FaceCW {
			area = -area
		}
		if dc.Cull == CullBack && area <= 0 {
			return
		}
		if dc.Cull == CullFront && area >= 0 {
			return
		}
	}
	dc.rasterize(v1, v2, v3, dc.screen(ndc0), dc.screen(ndc1), dc.screen(ndc2))
}

// DrawMesh draws mesh with the given model matrix, spreading triangles over
// one goroutine per logical CPU.
func (dc *Context) DrawMesh(mesh *Mesh, viewProjection, model mgl64.Mat4) {
	dc.Shader.Prepare(viewProjection, model)
	wn := runtime.NumCPU()
	var wg sync.WaitGroup
	wg.Add(wn)
	for wi := 0; wi < wn; wi++ {
		go func(wi int) {
			defer wg.Done()
			for i := wi; i < len(mesh.Triangles); i += wn {
				dc.DrawTriangle(mesh.Triangles[i])
			}
		}(wi)
	}
	wg.Wait()
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
