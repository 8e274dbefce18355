package fitview

import (
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
)

// MaxHistory is the number of samples an FPSWindow keeps.
const MaxHistory = 60

// FPSWindow holds the most recent frame rate samples in insertion order.
// The zero value is an empty window ready for use.
type FPSWindow struct {
	samples [MaxHistory]float64
	start   int
	n       int
}

// Record appends fps, evicting the oldest sample once the window is full.
func (w *FPSWindow) Record(fps float64) {
	if w.n < MaxHistory {
		w.samples[(w.start+w.n)%MaxHistory] = fps
		w.n++
		return
	}
	w.samples[w.start] = fps
	w.start = (w.start + 1) % MaxHistory
}

func (w *FPSWindow) Len() int {
	return w.n
}

// Samples returns a copy of the window contents, oldest first.
func (w *FPSWindow) Samples() []float64 {
	out := make([]float64, w.n)
	for i := range out {
		out[i] = w.samples[(w.start+i)%MaxHistory]
	}
	return out
}

// Average returns the mean of the current samples rounded half away from
// zero. It reports false when the window is empty.
func (w *FPSWindow) Average() (int, bool) {
	if w.n == 0 {
		return 0, false
	}
	var sum float64
	for i := 0; i < w.n; i++ {
		sum += w.samples[(w.start+i)%MaxHistory]
	}
	return int(scalar.Round(sum/float64(w.n), 0)), true
}

// Cadence selects how often a Sampler records into its window.
type Cadence int

const (
	_ Cadence = iota
	// PerFrame records the host supplied instantaneous rate every frame.
	PerFrame
	// PerSecond counts frames and records frames*1000/elapsedMs once a
	// second of wall clock time has passed.
	PerSecond
)

func (c Cadence) String() string {
	switch c {
	case PerFrame:
		return "frame"
	case PerSecond:
		return "second"
	}
	return fmt.Sprintf("Cadence(%d)", int(c))
}

// ParseCadence parses the names returned by Cadence.String.
func ParseCadence(s string) (Cadence, error) {
	switch s {
	case "frame":
		return PerFrame, nil
	case "second":
		return PerSecond, nil
	}
	return 0, fmt.Errorf("unknown fps cadence %q", s)
}

// FormatFPS renders the counter text shown by hosts.
func FormatFPS(instant float64, avg int) string {
	return fmt.Sprintf("FPS: %.0f (Avg: %d)", instant, avg)
}

// Sampler turns frame callbacks into window samples and display updates.
// It is meant to be driven from a single render loop.
type Sampler struct {
	Window  FPSWindow
	Cadence Cadence
	Display Display

	start      time.Time
	firstFrame time.Time
	last       time.Time
	frames     int
	instant    float64
}

// NewSampler returns a sampler whose timings are relative to start,
// normally the moment the model load began.
func NewSampler(cadence Cadence, display Display, start time.Time) *Sampler {
	return &Sampler{Cadence: cadence, Display: display, start: start}
}

// Frame must be called once per rendered frame, after the frame has been
// drawn, so the first call times the first complete render. instant is the
// host's current frame rate and is only used by the PerFrame cadence.
func (s *Sampler) Frame(now time.Time, instant float64) {
	if s.firstFrame.IsZero() {
		s.firstFrame = now
		s.last = now
		log.Printf("fitview: first render in %.2fms", durationMs(now.Sub(s.start)))
	}

	switch s.Cadence {
	case PerSecond:
		s.frames++
		elapsed := durationMs(now.Sub(s.last))
		if elapsed < 1000 {
			return
		}
		s.record(scalar.Round(float64(s.frames)*1000/elapsed, 0))
		s.frames = 0
		s.last = now
	default:
		s.record(instant)
	}
}

func (s *Sampler) record(fps float64) {
	s.instant = fps
	s.Window.Record(fps)
	avg, ok := s.Window.Average()
	if !ok || s.Display == nil {
		return
	}
	s.Display.SetText(FormatFPS(fps, avg))
}

// Instant returns the last recorded sample.
func (s *Sampler) Instant() float64 {
	return s.instant
}

// FirstFrame returns the time of the first Frame call, zero before it.
func (s *Sampler) FirstFrame() time.Time {
	return s.firstFrame
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
