package fitview

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shader transforms vertices and colors fragments. Prepare is called once
// before each mesh is drawn; Vertex and Fragment may then be called from
// several goroutines at once.
type Shader interface {
	Prepare(viewProjection, model mgl64.Mat4)
	Vertex(Vertex) Vertex
	Fragment(Vertex) Color
}

// transform holds the per-mesh matrices shared by every shader.
type transform struct {
	mvp    mgl64.Mat4
	model  mgl64.Mat4
	normal mgl64.Mat3
}

func (t *transform) Prepare(viewProjection, model mgl64.Mat4) {
	t.model = model
	t.mvp = viewProjection.Mul4(model)
	m3 := model.Mat3()
	if m3.Det() == 0 {
		t.normal = m3
		return
	}
	t.normal = m3.Inv().Transpose()
}

// vertex writes the clip space output and moves position and normal to
// world space.
func (t *transform) vertex(v Vertex) Vertex {
	v.Output = t.mvp.Mul4x1(v.Position.Vec4(1))
	v.Position = mgl64.TransformCoordinate(v.Position, t.model)
	v.Normal = safeNormalize(t.normal.Mul3x1(v.Normal))
	return v
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

// PhongShader implements ambient plus directional diffuse lighting with an
// optional specular highlight.
type PhongShader struct {
	transform
	LightDirection mgl64.Vec3
	CameraPosition mgl64.Vec3
	ObjectColor    Color
	AmbientColor   Color
	DiffuseColor   Color
	SpecularColor  Color
	SpecularPower  float64
}

func NewPhongShader(lightDirection, cameraPosition mgl64.Vec3, object, ambient, diffuse Color) *PhongShader {
	return &PhongShader{
		LightDirection: safeNormalize(lightDirection),
		CameraPosition: cameraPosition,
		ObjectColor:    object,
		AmbientColor:   ambient,
		DiffuseColor:   diffuse,
		SpecularColor:  White,
	}
}

func (shader *PhongShader) Vertex(v Vertex) Vertex {
	return shader.vertex(v)
}

func (shader *PhongShader) Fragment(v Vertex) Color {
	light := shader.AmbientColor
	diffuse := math.Max(v.Normal.Dot(shader.LightDirection), 0)
	light = light.Add(shader.DiffuseColor.MulScalar(diffuse))
	if diffuse > 0 && shader.SpecularPower > 0 {
		camera := safeNormalize(shader.CameraPosition.Sub(v.Position))
		reflected := reflect(shader.LightDirection.Mul(-1), v.Normal)
		specular := math.Max(camera.Dot(reflected), 0)
		if specular > 0 {
			specular = math.Pow(specular, shader.SpecularPower)
			light = light.Add(shader.SpecularColor.MulScalar(specular))
		}
	}
	color := shader.ObjectColor
	return color.Mul(light).Min(White).Alpha(color.A)
}

func reflect(i, n mgl64.Vec3) mgl64.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

// ToonShader implements cel shading with fixed intensity bands.
type ToonShader struct {
	transform
	LightDirection mgl64.Vec3
	ObjectColor    Color
	Bands          []ToonBand
}

// ToonBand colors every fragment whose light intensity exceeds Threshold.
// Bands are checked in order, so they must be sorted by decreasing threshold.
type ToonBand struct {
	Threshold float64
	Color     Color
}

func NewToonShader(lightDirection mgl64.Vec3, object Color) *ToonShader {
	return &ToonShader{
		LightDirection: safeNormalize(lightDirection),
		ObjectColor:    object,
		Bands: []ToonBand{
			{0.8, Color{1, 1, 0.667, 1}},
			{0.5, Color{1, 0.533, 0.267, 1}},
			{0.2, Color{0.631, 0.173, 0, 1}},
			{math.Inf(-1), Color{0.302, 0.067, 0, 1}},
		},
	}
}

func (s *ToonShader) Vertex(v Vertex) Vertex {
	return s.vertex(v)
}

func (s *ToonShader) Fragment(v Vertex) Color {
	intensity := math.Max(0, v.Normal.Dot(s.LightDirection))
	for _, b := range s.Bands {
		if intensity > b.Threshold {
			return s.ObjectColor.Mul(b.Color)
		}
	}
	return Transparent
}

// SolidShader renders everything in one color.
type SolidShader struct {
	transform
	Color Color
}

func NewSolidShader(color Color) *SolidShader {
	return &SolidShader{Color: color}
}

func (s *SolidShader) Vertex(v Vertex) Vertex {
	return s.vertex(v)
}

func (s *SolidShader) Fragment(Vertex) Color {
	return s.Color
}
