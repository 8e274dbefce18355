package fitview

import (
	"log"
	"sync"
)

// Display receives formatted status text such as the FPS counter.
type Display interface {
	SetText(text string)
}

// LogDisplay logs every update.
type LogDisplay struct {
	Logger *log.Logger
}

func (d LogDisplay) SetText(text string) {
	if d.Logger != nil {
		d.Logger.Println(text)
		return
	}
	log.Println(text)
}

// TextDisplay keeps the latest text for an overlay. Hosts may read it from
// a different goroutine than the one driving the sampler.
type TextDisplay struct {
	mu   sync.Mutex
	text string
}

func (d *TextDisplay) SetText(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}

func (d *TextDisplay) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}
