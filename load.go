package fitview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/qmuntal/gltf"
)

var (
	ErrNoGeometry        = errors.New("fitview: model contains no triangles")
	ErrUnsupportedFormat = errors.New("fitview: unsupported model format")
)

type LoadEventKind int

const (
	_ LoadEventKind = iota
	LoadProgress
	LoadSuccess
	LoadFailure
)

func (k LoadEventKind) String() string {
	switch k {
	case LoadProgress:
		return "progress"
	case LoadSuccess:
		return "success"
	case LoadFailure:
		return "failure"
	}
	return fmt.Sprintf("LoadEventKind(%d)", int(k))
}

// LoadEvent is one step of an asynchronous load. Progress events carry
// Loaded and Total byte counts, Success carries Root and Failure carries Err.
type LoadEvent struct {
	Kind    LoadEventKind
	Root    *Node
	Loaded  int64
	Total   int64
	Err     error
	Elapsed time.Duration
}

// Percent returns Loaded as a percentage of Total, 0 when Total is unknown.
func (e LoadEvent) Percent() float64 {
	if e.Total <= 0 {
		return 0
	}
	return float64(e.Loaded) / float64(e.Total) * 100
}

// Load reads the model at path in a new goroutine. The returned channel
// yields any number of progress events followed by exactly one success or
// failure event, then closes.
func Load(ctx context.Context, path string) <-chan LoadEvent {
	events := make(chan LoadEvent, 16)
	go func() {
		defer close(events)
		start := time.Now()
		log.Printf("fitview: loading model from %s", path)
		root, err := loadWithProgress(ctx, path, events)
		if err == nil {
			err = ctx.Err()
		}
		elapsed := time.Since(start)
		if err != nil {
			log.Printf("fitview: error loading model: %v", err)
			events <- LoadEvent{Kind: LoadFailure, Err: err, Elapsed: elapsed}
			return
		}
		log.Printf("fitview: model loaded in %.2fms", durationMs(elapsed))
		events <- LoadEvent{Kind: LoadSuccess, Root: root, Elapsed: elapsed}
	}()
	return events
}

// LoadFile loads the model at path synchronously.
func LoadFile(path string) (*Node, error) {
	return Wait(Load(context.Background(), path), nil)
}

// Wait drains events until the load finishes. onProgress, when not nil,
// is called for every progress event.
func Wait(events <-chan LoadEvent, onProgress func(LoadEvent)) (*Node, error) {
	for e := range events {
		switch e.Kind {
		case LoadProgress:
			if onProgress != nil {
				onProgress(e)
			}
		case LoadSuccess:
			return e.Root, nil
		case LoadFailure:
			return nil, e.Err
		}
	}
	return nil, errors.New("fitview: load ended without result")
}

// LogProgress logs a progress event the way hosts report it.
func LogProgress(e LoadEvent) {
	log.Printf("fitview: loading progress: %.2f%%", e.Percent())
}

func loadWithProgress(ctx context.Context, path string, events chan<- LoadEvent) (*Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	r := &progressReader{ctx: ctx, r: file, total: info.Size(), events: events, lastPct: -1}

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		doc := new(gltf.Document)
		dec := gltf.NewDecoderFS(r, os.DirFS(filepath.Dir(path)))
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		r.finish()
		return NodeFromGLTF(doc, name)
	case ".obj":
		mesh, err := LoadOBJFromReader(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		r.finish()
		if mesh.Count() == 0 {
			return nil, ErrNoGeometry
		}
		root := NewGroup(name)
		root.AddChild(NewNode(strings.TrimSuffix(name, filepath.Ext(name)), mesh))
		return root, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// progressReader reports whole percent steps of the bytes read so far.
type progressReader struct {
	ctx     context.Context
	r       io.Reader
	loaded  int64
	total   int64
	lastPct int64
	events  chan<- LoadEvent
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(b)
	p.loaded += int64(n)
	if p.total > 0 {
		if pct := p.loaded * 100 / p.total; pct != p.lastPct {
			p.lastPct = pct
			p.send()
		}
	}
	return n, err
}

// finish emits a final event for readers that stop before EOF.
func (p *progressReader) finish() {
	if p.total > 0 && p.lastPct < 100 {
		p.loaded = p.total
		p.lastPct = 100
		p.send()
	}
}

func (p *progressReader) send() {
	select {
	case p.events <- LoadEvent{Kind: LoadProgress, Loaded: p.loaded, Total: p.total}:
	case <-p.ctx.Done():
	}
}
