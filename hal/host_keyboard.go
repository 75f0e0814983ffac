//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyboard turns ebiten key state into scancodes on the PS/2 controller.
type hostKeyboard struct {
	chip *Chipset
}

func newHostKeyboard(chip *Chipset) *hostKeyboard {
	return &hostKeyboard{chip: chip}
}

var windowKeys = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeySpace, KeySpace},
}

func (k *hostKeyboard) poll() {
	emit := func(ev KeyEvent) {
		if seq := Scancodes(ev); seq != nil {
			k.chip.PushScancodes(seq...)
		}
	}

	for _, wk := range windowKeys {
		if inpututil.IsKeyJustPressed(wk.key) {
			emit(KeyEvent{Code: wk.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(wk.key) {
			emit(KeyEvent{Code: wk.code, Press: false})
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' {
			continue
		}
		k.chip.PushScancodes(Keystroke(KeyEvent{Rune: r})...)
	}
}
