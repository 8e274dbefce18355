package fitview

import (
	"testing"
	"time"
)

type recordingDisplay struct {
	texts []string
}

func (d *recordingDisplay) SetText(text string) {
	d.texts = append(d.texts, text)
}

func TestFPSWindowBound(t *testing.T) {
	for _, n := range []int{0, 1, 59, 60, 61, 200} {
		var w FPSWindow
		for i := 1; i <= n; i++ {
			w.Record(float64(i))
		}
		want := n
		if want > MaxHistory {
			want = MaxHistory
		}
		if w.Len() != want {
			t.Fatalf("N=%d: len = %d, want %d", n, w.Len(), want)
		}
		samples := w.Samples()
		for i, s := range samples {
			if exp := float64(n - want + 1 + i); s != exp {
				t.Fatalf("N=%d: sample %d = %v, want %v", n, i, s, exp)
			}
		}
	}
}

func TestFPSWindowAverage(t *testing.T) {
	var w FPSWindow
	if avg, ok := w.Average(); ok || avg != 0 {
		t.Fatalf("empty window average = %d, %v; want 0, false", avg, ok)
	}
	for _, s := range []float64{10, 20, 30} {
		w.Record(s)
	}
	if avg, ok := w.Average(); !ok || avg != 20 {
		t.Fatalf("average = %d, want 20", avg)
	}
}

func TestFPSWindowEviction(t *testing.T) {
	var w FPSWindow
	for i := 1; i <= 65; i++ {
		w.Record(float64(i))
	}
	samples := w.Samples()
	if len(samples) != 60 || samples[0] != 6 || samples[59] != 65 {
		t.Fatalf("unexpected window %v", samples)
	}
	// mean of 6..65 is 35.5, rounded half up
	if avg, _ := w.Average(); avg != 36 {
		t.Fatalf("average = %d, want 36", avg)
	}
}

func TestFormatFPS(t *testing.T) {
	if got := FormatFPS(59.6, 58); got != "FPS: 60 (Avg: 58)" {
		t.Fatalf("got %q", got)
	}
}

func TestParseCadence(t *testing.T) {
	for _, c := range []Cadence{PerFrame, PerSecond} {
		got, err := ParseCadence(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseCadence(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCadence("minute"); err == nil {
		t.Fatal("expected error for unknown cadence")
	}
}

func TestSamplerPerFrame(t *testing.T) {
	d := &recordingDisplay{}
	start := time.Unix(100, 0)
	s := NewSampler(PerFrame, d, start)
	s.Frame(start.Add(20*time.Millisecond), 60)
	s.Frame(start.Add(40*time.Millisecond), 30)

	want := []string{"FPS: 60 (Avg: 60)", "FPS: 30 (Avg: 45)"}
	if len(d.texts) != len(want) {
		t.Fatalf("texts = %q, want %q", d.texts, want)
	}
	for i := range want {
		if d.texts[i] != want[i] {
			t.Fatalf("texts = %q, want %q", d.texts, want)
		}
	}
	if s.FirstFrame() != start.Add(20*time.Millisecond) {
		t.Fatalf("first frame = %v", s.FirstFrame())
	}
	if s.Instant() != 30 {
		t.Fatalf("instant = %v, want 30", s.Instant())
	}
}

func TestSamplerPerSecond(t *testing.T) {
	d := &recordingDisplay{}
	t0 := time.Unix(100, 0)
	s := NewSampler(PerSecond, d, t0)

	s.Frame(t0, 0)
	s.Frame(t0.Add(500*time.Millisecond), 0)
	if len(d.texts) != 0 || s.Window.Len() != 0 {
		t.Fatalf("no sample expected before a second passed, got %q", d.texts)
	}
	s.Frame(t0.Add(1000*time.Millisecond), 0)
	s.Frame(t0.Add(1500*time.Millisecond), 0)
	s.Frame(t0.Add(2000*time.Millisecond), 0)

	want := []string{"FPS: 3 (Avg: 3)", "FPS: 2 (Avg: 3)"}
	if len(d.texts) != 2 || d.texts[0] != want[0] || d.texts[1] != want[1] {
		t.Fatalf("texts = %q, want %q", d.texts, want)
	}
	if got := s.Window.Samples(); len(got) != 2 || got[0] != 3 || got[1] != 2 {
		t.Fatalf("samples = %v", got)
	}
}

func TestSamplerWithoutDisplay(t *testing.T) {
	s := NewSampler(PerFrame, nil, time.Now())
	s.Frame(time.Now(), 42)
	if s.Window.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Window.Len())
	}
}

func TestTextDisplay(t *testing.T) {
	var d TextDisplay
	d.SetText("FPS: 1 (Avg: 1)")
	if d.Text() != "FPS: 1 (Avg: 1)" {
		t.Fatalf("text = %q", d.Text())
	}
}
