package fitview

import (
	"context"
	"testing"
	"time"
)

func TestViewerLoadsAndRenders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = writeFile(t, "quad.obj", []byte(quadOBJ))
	cfg.Width, cfg.Height = 32, 24
	display := &recordingDisplay{}
	v, err := NewViewer(context.Background(), cfg, PerFrame, display)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Wait(); err != nil {
		t.Fatal(err)
	}
	if !v.Loaded() || !v.Fit.Applied {
		t.Fatalf("model not attached: %+v", v.Fit)
	}
	assertNormalized(t, v.Scene.Root)

	im := v.Frame(time.Now(), 60)
	if b := im.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("bounds = %v", b)
	}
	if len(display.texts) != 1 || display.texts[0] != "FPS: 60 (Avg: 60)" {
		t.Fatalf("texts = %q", display.texts)
	}
}

func TestViewerLoadFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "/nonexistent/model.glb"
	cfg.Width, cfg.Height = 8, 8
	v, err := NewViewer(context.Background(), cfg, PerSecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Wait(); err == nil {
		t.Fatal("expected load error")
	}
	if v.Err() == nil || v.Loaded() {
		t.Fatal("failed load must be reported and leave the scene empty")
	}
	// rendering continues without a model
	if im := v.Frame(time.Now(), 0); im.Bounds().Dx() != 8 {
		t.Fatal("unexpected frame")
	}
}

func TestViewerTimesFirstFrameAfterRender(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "/nonexistent/model.obj"
	cfg.Width, cfg.Height = 4, 4
	v, err := NewViewer(context.Background(), cfg, PerFrame, nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = v.Wait()
	if !v.Sampler.FirstFrame().IsZero() {
		t.Fatal("first frame set before any render")
	}
	now := time.Now()
	v.Frame(now, 30)
	if !v.Sampler.FirstFrame().Equal(now) {
		t.Fatalf("first frame = %v, want %v", v.Sampler.FirstFrame(), now)
	}
}
