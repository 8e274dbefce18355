package main

import (
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/netisu/fitview"
)

type game struct {
	viewer  *fitview.Viewer
	display *fitview.TextDisplay
	rgba    *image.RGBA
	frame   *ebiten.Image
	failed  bool
}

func newGame(v *fitview.Viewer, display *fitview.TextDisplay) *game {
	return &game{viewer: v, display: display}
}

func (g *game) Update() error {
	g.viewer.Poll()
	if err := g.viewer.Err(); err != nil && !g.failed {
		// The window stays open without a model.
		g.failed = true
		log.Printf("fitview: %v", err)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	im := g.viewer.Frame(time.Now(), ebiten.ActualFPS())

	b := im.Bounds()
	if g.rgba == nil || g.rgba.Bounds() != b {
		g.rgba = image.NewRGBA(b)
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	draw.Draw(g.rgba, b, im, b.Min, draw.Src)
	g.frame.WritePixels(g.rgba.Pix)
	screen.DrawImage(g.frame, nil)

	ebitenutil.DebugPrint(screen, g.display.Text())
}

// Layout follows the window size so the scene viewport and camera aspect
// track resizes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.Scene.SetSize(outsideWidth, outsideHeight)
	return g.viewer.Scene.Size()
}
