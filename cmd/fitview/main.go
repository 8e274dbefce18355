// Command fitview renders a model headlessly with the software rasterizer,
// reporting the frame rate once per second.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/netisu/fitview"
)

type options struct {
	frames   int
	duration time.Duration
	out      string
	wait     bool
}

func main() {
	cfg := fitview.DefaultConfig()
	var opts options
	var configPath string
	flag.StringVar(&configPath, "config", "", "JSON config file; explicit flags override it.")
	flag.StringVar(&cfg.Model, "model", cfg.Model, "Model to load (.glb, .gltf or .obj).")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Frame width.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Frame height.")
	flag.IntVar(&cfg.Supersample, "ss", cfg.Supersample, "Supersampling factor.")
	flag.Float64Var(&cfg.Simplify, "simplify", cfg.Simplify, "Decimate meshes to this fraction of triangles (0 = off).")
	flag.StringVar(&cfg.Shader, "shader", cfg.Shader, "Shader: phong, toon or solid.")
	flag.StringVar(&cfg.Cadence, "cadence", "second", "FPS sampling cadence: frame or second.")
	flag.IntVar(&opts.frames, "frames", 0, "Stop after N frames (0 = use -duration).")
	flag.DurationVar(&opts.duration, "duration", 5*time.Second, "Stop after this long when -frames is 0.")
	flag.StringVar(&opts.out, "out", "", "Write the last frame to this PNG file.")
	flag.BoolVar(&opts.wait, "wait", true, "Wait for the model before the first frame.")
	flag.Parse()

	if configPath != "" {
		if err := applyConfigFile(&cfg, configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if os.Getenv("FITVIEW_DEBUG") != "" {
		cfg.Debug = true
	}
	if cfg.Debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, cfg, opts); err != nil {
		if interrupted(err) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// interrupted reports whether err comes from the interrupt signal.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// applyConfigFile loads path into cfg and re-applies the flags that were
// set on the command line, which write through to cfg's fields.
func applyConfigFile(cfg *fitview.Config, path string) error {
	set := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	loaded, err := fitview.LoadConfig(path)
	if err != nil {
		return err
	}
	*cfg = loaded
	for name, value := range set {
		if err := flag.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func run(ctx context.Context, cfg fitview.Config, opts options) error {
	if cfg.Cadence == "" {
		cfg.Cadence = "second"
	}
	cadence, err := fitview.ParseCadence(cfg.Cadence)
	if err != nil {
		return err
	}
	v, err := fitview.NewViewer(ctx, cfg, cadence, fitview.LogDisplay{})
	if err != nil {
		return err
	}
	if opts.wait {
		_ = v.Wait()
	}
	failed := false

	deadline := time.Now().Add(opts.duration)
	last := time.Now()
	for frame := 0; ; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := v.Err(); err != nil && !failed {
			// Frames keep rendering without a model.
			failed = true
			log.Printf("fitview: %v", err)
		}
		if opts.frames > 0 && frame >= opts.frames {
			break
		}
		if opts.frames <= 0 && time.Now().After(deadline) {
			break
		}

		now := time.Now()
		instant := 0.0
		if dt := now.Sub(last); dt > 0 {
			instant = float64(time.Second) / float64(dt)
		}
		last = now
		v.Frame(now, instant)
	}

	if opts.out == "" {
		return nil
	}
	return v.Scene.WritePNG(opts.out)
}
