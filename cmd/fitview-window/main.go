// Command fitview-window shows a model in a desktop window, sampling the
// frame rate on every drawn frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/netisu/fitview"
)

func main() {
	cfg := fitview.DefaultConfig()
	var configPath string
	flag.StringVar(&configPath, "config", "", "JSON config file; -model overrides it.")
	flag.StringVar(&cfg.Model, "model", cfg.Model, "Model to load (.glb, .gltf or .obj).")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Initial window width.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Initial window height.")
	flag.StringVar(&cfg.Shader, "shader", cfg.Shader, "Shader: phong, toon or solid.")
	flag.Float64Var(&cfg.Simplify, "simplify", cfg.Simplify, "Decimate meshes to this fraction of triangles (0 = off).")
	flag.Parse()

	if configPath != "" {
		model := cfg.Model
		loaded, err := fitview.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
		flag.Visit(func(f *flag.Flag) {
			if f.Name == "model" {
				cfg.Model = model
			}
		})
	}
	if os.Getenv("FITVIEW_DEBUG") != "" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	if err := runWindow(context.Background(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runWindow blocks until the window closes.
func runWindow(ctx context.Context, cfg fitview.Config) error {
	display := &fitview.TextDisplay{}
	v, err := fitview.NewViewer(ctx, cfg, fitview.PerFrame, display)
	if err != nil {
		return err
	}
	g := newGame(v, display)
	ebiten.SetWindowTitle("fitview - " + cfg.Model)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
