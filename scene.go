package fitview

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/nfnt/resize"
)

// Camera is a perspective camera looking from Eye towards Center.
type Camera struct {
	Eye, Center, Up mgl64.Vec3
	Fovy            float64 // degrees
	Near, Far       float64
}

func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	projection := mgl64.Perspective(mgl64.DegToRad(c.Fovy), aspect, c.Near, c.Far)
	return projection.Mul4(mgl64.LookAtV(c.Eye, c.Center, c.Up))
}

// Scene renders a node hierarchy through a software Context. Supersample
// renders at a multiple of the output size and downsamples the result.
type Scene struct {
	Root        *Node
	Camera      Camera
	Shader      Shader
	ClearColor  Color
	Supersample int

	width, height int
	context       *Context
}

func NewScene(root *Node, camera Camera, shader Shader, width, height, supersample int) *Scene {
	s := &Scene{Root: root, Camera: camera, Shader: shader, ClearColor: Black, Supersample: supersample}
	s.SetSize(width, height)
	return s
}

// SetSize updates the viewport; the camera aspect follows on the next
// Render. Non-positive sizes are ignored.
func (s *Scene) SetSize(width, height int) {
	if width <= 0 || height <= 0 || (width == s.width && height == s.height && s.context != nil) {
		return
	}
	s.width, s.height = width, height
	ss := s.supersample()
	s.context = NewContext(width*ss, height*ss, s.Shader)
}

func (s *Scene) Size() (int, int) {
	return s.width, s.height
}

func (s *Scene) Aspect() float64 {
	return float64(s.width) / float64(s.height)
}

func (s *Scene) supersample() int {
	if s.Supersample < 1 {
		return 1
	}
	return s.Supersample
}

// Render draws every mesh in the hierarchy with its world matrix and
// returns the frame at the scene size.
func (s *Scene) Render() image.Image {
	dc := s.context
	dc.Shader = s.Shader
	dc.ClearColor = s.ClearColor
	dc.ClearColorBuffer()
	dc.ClearDepthBuffer()

	if p, ok := s.Shader.(*PhongShader); ok {
		p.CameraPosition = s.Camera.Eye
	}
	vp := s.Camera.ViewProjection(s.Aspect())
	if s.Root != nil {
		s.Root.Walk(mgl64.Ident4(), func(n *Node, world mgl64.Mat4) bool {
			if n.Mesh != nil {
				dc.DrawMesh(n.Mesh, vp, world)
			}
			return true
		})
	}

	if s.supersample() == 1 {
		return dc.Image()
	}
	return resize.Resize(uint(s.width), uint(s.height), dc.Image(), resize.Bilinear)
}

// WritePNG renders the scene and writes it to path.
func (s *Scene) WritePNG(path string) error {
	return SavePNG(path, s.Render())
}

func SavePNG(path string, im image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(file, im); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}
