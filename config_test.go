package fitview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cam := cfg.ViewCamera()
	if cam.Eye != (mgl64.Vec3{0, 0, 5}) || cam.Fovy != 75 || cam.Near != 0.1 || cam.Far != 1000 {
		t.Fatalf("unexpected camera %+v", cam)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeFile(t, "cfg.json", []byte(`{"model": "duck.glb", "width": 320, "shader": "toon"}`))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "duck.glb" || cfg.Width != 320 || cfg.Height != 720 || cfg.Camera.Fovy != 75 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	shader, err := cfg.NewShader()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := shader.(*ToonShader); !ok {
		t.Fatalf("shader = %T, want *ToonShader", shader)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Model = "" },
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Simplify = 2 },
		func(c *Config) { c.Camera.Near = 0 },
		func(c *Config) { c.Camera.Far = c.Camera.Near },
		func(c *Config) { c.Cadence = "hourly" },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
	path := writeFile(t, "bad.json", []byte(`{"width": -1}`))
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid file")
	}
	path = writeFile(t, "broken.json", []byte(`{`))
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfigUnknownShader(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shader = "glass"
	if _, err := cfg.NewShader(); err == nil {
		t.Fatal("expected error")
	}
	cfg = DefaultConfig()
	cfg.Color = "zz"
	if _, err := cfg.NewShader(); err == nil {
		t.Fatal("expected color error")
	}
}

func TestHexColor(t *testing.T) {
	c, err := HexColor("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if n := c.NRGBA(); n.R != 255 || n.G != 128 || n.B != 0 || n.A != 255 {
		t.Fatalf("got %+v", n)
	}
	c, err = HexColor("fff")
	if err != nil || c != White {
		t.Fatalf("short form = %+v, %v", c, err)
	}
	c, err = HexColor("00000080")
	if err != nil || c.NRGBA().A != 128 {
		t.Fatalf("alpha form = %+v, %v", c, err)
	}
	if _, err := HexColor("12345"); err == nil {
		t.Fatal("expected length error")
	}
}
