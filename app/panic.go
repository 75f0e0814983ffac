package app

import (
	"fmt"
	"strings"

	"snakeos/kernel"
	"snakeos/vga"
)

var panicColor = vga.NewColorCode(vga.White, vga.Red)

// fatal reports f on the serial log, with the Go stack, and on the bottom
// lines of the screen. The screen is skipped if the fault left it locked.
func (m *Machine) fatal(f kernel.Fault) {
	lines := faultLines(f)
	for _, line := range lines {
		m.log.WriteLineString(line)
	}
	if len(f.Stack) > 0 {
		m.log.WriteLineString("stack:")
		for _, line := range strings.Split(string(f.Stack), "\n") {
			if line == "" {
				continue
			}
			m.log.WriteLineString(line)
		}
	}

	m.screen.TryDo(func(w *vga.Writer) {
		w.SetColor(panicColor)
		w.WriteString("\n")
		for _, line := range lines {
			w.WriteString(line + "\n")
		}
	})
}

func faultLines(f kernel.Fault) []string {
	lines := []string{fmt.Sprintf("KERNEL PANIC (%s on %s stack)", f.Kind, f.StackName)}
	lines = append(lines, strings.Split(f.Message, "\n")...)
	if f.Frame != nil {
		lines = append(lines, strings.Split(f.Frame.String(), "\n")...)
	}
	return lines
}
