package hal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var ErrScript = errors.New("input script")

// Script is a schedule of key presses indexed by timer tick.
//
// Scripts are starlark files that bind a global "keys" to an iterable of
// (tick, key) pairs, for example:
//
//	keys = [(5, UP), (9, LEFT)] + [(t, DOWN) for t in range(20, 40, 10)]
type Script struct {
	events map[uint64][]KeyEvent
}

var scriptKeys = map[string]KeyCode{
	"up":    KeyUp,
	"down":  KeyDown,
	"left":  KeyLeft,
	"right": KeyRight,
	"enter": KeyEnter,
	"esc":   KeyEscape,
	"space": KeySpace,
}

// LoadScript reads and evaluates a script file.
func LoadScript(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(path, src)
}

// ParseScript evaluates script source.
func ParseScript(filename string, src []byte) (*Script, error) {
	predeclared := starlark.StringDict{}
	for name := range scriptKeys {
		predeclared[strings.ToUpper(name)] = starlark.String(name)
	}

	opts := syntax.FileOptions{}
	thread := &starlark.Thread{Name: "keys"}
	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScript, err)
	}

	v, ok := globals["keys"]
	if !ok {
		return nil, fmt.Errorf("%w: %s does not define keys", ErrScript, filename)
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("%w: keys is %s, want iterable", ErrScript, v.Type())
	}

	s := &Script{events: make(map[uint64][]KeyEvent)}
	it := iterable.Iterate()
	defer it.Done()
	var x starlark.Value
	for it.Next(&x) {
		pair, ok := x.(starlark.Tuple)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %s is not a (tick, key) pair", ErrScript, x)
		}
		tick, err := starlark.AsInt32(pair[0])
		if err != nil || tick <= 0 {
			return nil, fmt.Errorf("%w: bad tick %s", ErrScript, pair[0])
		}
		name, ok := starlark.AsString(pair[1])
		if !ok {
			return nil, fmt.Errorf("%w: bad key %s", ErrScript, pair[1])
		}
		code, ok := scriptKeys[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown key %q", ErrScript, name)
		}
		t := uint64(tick)
		s.events[t] = append(s.events[t], KeyEvent{Code: code, Press: true})
	}
	return s, nil
}

// At returns the key presses scheduled for a tick. A nil Script has none.
func (s *Script) At(tick uint64) []KeyEvent {
	if s == nil {
		return nil
	}
	return s.events[tick]
}
