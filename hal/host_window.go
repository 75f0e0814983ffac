//go:build !tinygo && cgo

package hal

import (
	"context"
	"errors"
	"image"
	"os"

	"snakeos/fonts/cp437"
	"snakeos/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that displays the text memory and
// forwards keyboard input. It blocks until the window closes.
func RunWindow(boot Boot, cfg RunConfig) error {
	h := newHostHAL(&hostLogger{w: os.Stdout})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startMachine(ctx, h, boot)

	fb := newHostFramebuffer(TextCols*cp437.CellWidth, TextRows*cp437.CellHeight)
	g := &hostGame{
		h:     h,
		fb:    fb,
		kbd:   newHostKeyboard(h.chip),
		timer: newHostTimer(h.chip, cfg.Hz),
		done:  done,
	}
	ebiten.SetWindowTitle("snakeos (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(fb.width*2, fb.height*2)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	timer   *hostTimer
	done    <-chan error
	halted  bool
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *hostGame) Update() error {
	if !g.halted {
		select {
		case err := <-g.done:
			// The display stays frozen on whatever the machine left behind.
			g.halted = true
			if err != nil {
				g.h.logger.WriteLineString("machine halted: " + err.Error())
			}
		default:
		}
	}
	if g.halted {
		return nil
	}
	g.kbd.poll()
	g.timer.step()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	fb.renderText(g.h.text)

	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.width, g.fb.height
}
