//go:build !tinygo && !cgo

package hal

import "errors"

func RunWindow(_ Boot, _ RunConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1), or use -mode terminal")
}
