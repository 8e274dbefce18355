package fitview

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// Config describes a viewer run. Zero fields in a loaded file keep their
// DefaultConfig values.
type Config struct {
	Model       string    `json:"model"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Supersample int       `json:"supersample,omitempty"`
	Cadence     string    `json:"cadence,omitempty"`
	Simplify    float64   `json:"simplify,omitempty"`
	Shader      string    `json:"shader,omitempty"`
	Color       string    `json:"color,omitempty"`
	Background  string    `json:"background,omitempty"`
	Camera      CameraCfg `json:"camera"`
	Light       LightCfg  `json:"light"`
	Ambient     float64   `json:"ambient"`
	Debug       bool      `json:"debug,omitempty"`
}

type CameraCfg struct {
	Eye    [3]float64 `json:"eye"`
	Center [3]float64 `json:"center"`
	Up     [3]float64 `json:"up"`
	Fovy   float64    `json:"fovy"`
	Near   float64    `json:"near"`
	Far    float64    `json:"far"`
}

type LightCfg struct {
	Direction [3]float64 `json:"direction"`
	Intensity float64    `json:"intensity"`
}

func DefaultConfig() Config {
	return Config{
		Model:       "model.glb",
		Width:       1280,
		Height:      720,
		Supersample: 1,
		Shader:      "phong",
		Color:       "cccccc",
		Background:  "000000",
		Camera: CameraCfg{
			Eye:  [3]float64{0, 0, 5},
			Up:   [3]float64{0, 1, 0},
			Fovy: 75,
			Near: 0.1,
			Far:  1000,
		},
		Light:   LightCfg{Direction: [3]float64{1, 1, 1}, Intensity: 0.5},
		Ambient: 0.5,
	}
}

// LoadConfig reads a JSON config on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("config: model path is empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.Simplify < 0 || c.Simplify > 1 {
		return fmt.Errorf("config: simplify factor %v not in [0, 1]", c.Simplify)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("config: invalid clip range %v..%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Cadence != "" {
		if _, err := ParseCadence(c.Cadence); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

func (c Config) ViewCamera() Camera {
	return Camera{
		Eye:    mgl64.Vec3(c.Camera.Eye),
		Center: mgl64.Vec3(c.Camera.Center),
		Up:     mgl64.Vec3(c.Camera.Up),
		Fovy:   c.Camera.Fovy,
		Near:   c.Camera.Near,
		Far:    c.Camera.Far,
	}
}

// NewShader builds the configured shader.
func (c Config) NewShader() (Shader, error) {
	object, err := HexColor(c.Color)
	if err != nil {
		return nil, err
	}
	light := mgl64.Vec3(c.Light.Direction)
	switch c.Shader {
	case "", "phong":
		return NewPhongShader(light, c.ViewCamera().Eye, object, Gray(c.Ambient), Gray(c.Light.Intensity)), nil
	case "toon":
		return NewToonShader(light, object), nil
	case "solid":
		return NewSolidShader(object), nil
	}
	return nil, fmt.Errorf("unknown shader %q", c.Shader)
}

// NewScene builds a scene for root from the config.
func (c Config) NewScene(root *Node) (*Scene, error) {
	shader, err := c.NewShader()
	if err != nil {
		return nil, err
	}
	bg, err := HexColor(c.Background)
	if err != nil {
		return nil, err
	}
	s := NewScene(root, c.ViewCamera(), shader, c.Width, c.Height, c.Supersample)
	s.ClearColor = bg
	return s, nil
}
