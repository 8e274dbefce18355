package fitview

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"
)

// Viewer ties an asynchronous model load, normalization, rendering and FPS
// sampling together for a host loop. All methods must be called from the
// host's render goroutine.
type Viewer struct {
	Scene   *Scene
	Sampler *Sampler
	Fit     Fit

	simplify float64
	events   <-chan LoadEvent
	root     *Node
	err      error
}

// NewViewer starts loading cfg.Model and returns a viewer that renders an
// empty scene until the model arrives.
func NewViewer(ctx context.Context, cfg Config, cadence Cadence, display Display) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene, err := cfg.NewScene(nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	return &Viewer{
		Scene:    scene,
		Sampler:  NewSampler(cadence, display, start),
		simplify: cfg.Simplify,
		events:   Load(ctx, cfg.Model),
	}, nil
}

// Poll handles pending load events without blocking.
func (v *Viewer) Poll() {
	for v.events != nil {
		select {
		case e, ok := <-v.events:
			if !ok {
				v.events = nil
				return
			}
			v.handle(e)
		default:
			return
		}
	}
}

// Wait blocks until the load has finished and returns its error.
func (v *Viewer) Wait() error {
	for v.events != nil {
		e, ok := <-v.events
		if !ok {
			v.events = nil
			break
		}
		v.handle(e)
	}
	return v.err
}

func (v *Viewer) handle(e LoadEvent) {
	switch e.Kind {
	case LoadProgress:
		LogProgress(e)
	case LoadFailure:
		v.err = e.Err
	case LoadSuccess:
		v.attach(e.Root)
	}
}

func (v *Viewer) attach(root *Node) {
	if v.simplify > 0 && v.simplify < 1 {
		before, after := SimplifyMeshes(root, v.simplify)
		log.Printf("fitview: simplified %d triangles to %d", before, after)
	}
	v.Fit = Normalize(root)
	if v.Fit.Applied {
		log.Printf("fitview: normalized %s: scale %.4g, center %v, %d nodes", root.Name, v.Fit.Scale, v.Fit.Center, v.Fit.Nodes)
	}
	v.root = root
	v.Scene.Root = root
}

// Loaded reports whether the model is attached to the scene.
func (v *Viewer) Loaded() bool {
	return v.root != nil
}

// Err returns the load failure, if any.
func (v *Viewer) Err() error {
	if v.err != nil {
		return fmt.Errorf("load model: %w", v.err)
	}
	return nil
}

// Frame renders one frame and feeds the sampler.
func (v *Viewer) Frame(now time.Time, instant float64) image.Image {
	v.Poll()
	im := v.Scene.Render()
	v.Sampler.Frame(now, instant)
	return im
}
