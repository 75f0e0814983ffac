//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"snakeos/app"
	"snakeos/hal"
)

func main() {
	var (
		cfg    hal.RunConfig
		appCfg app.Config
		mode   string
		pitHz  uint
		dump   bool
	)
	flag.StringVar(&mode, "mode", string(hal.ModeWindow), "Front end: window, terminal or headless.")
	flag.UintVar(&pitHz, "pit-hz", app.DefaultTimerHz, "Programmed timer interrupt rate.")
	flag.Float64Var(&cfg.Hz, "hz", 0, "Override the host timer rate (0 = follow the PIT).")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Script, "script", "", "Starlark file with scheduled key presses (headless).")
	flag.BoolVar(&dump, "dump", false, "Print the final screen when a headless run ends.")
	flag.Parse()

	cfg.Mode = hal.Mode(mode)
	appCfg.TimerHz = uint32(pitHz)
	if dump {
		cfg.Dump = os.Stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := hal.Run(ctx, app.Boot(appCfg), cfg)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
