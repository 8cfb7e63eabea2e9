package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/audio"
	"github.com/lixenwraith/rainfield/config"
	"github.com/lixenwraith/rainfield/engine"
	"github.com/lixenwraith/rainfield/perf"
	"github.com/lixenwraith/rainfield/scene"
	"github.com/lixenwraith/rainfield/status"
	"github.com/lixenwraith/rainfield/terminal"
)

// metricsNamespace prefixes every exported metric
const metricsNamespace = "rainfield"

// runScene takes over the terminal and rains until a quit key or signal
func runScene(parent context.Context, cfg config.Config, log *zap.Logger) error {
	if !terminal.IsInteractive() {
		log.Info("stdout is not a terminal, skipping render")
		fmt.Fprintln(os.Stderr, "rainfield: stdout is not a terminal")
		return nil
	}

	mode, err := terminal.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return err
	}
	term, err := terminal.New(mode)
	if err != nil {
		return err
	}
	defer term.Fini()

	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stats := status.NewRegistry()
	manager := perf.NewManager(perf.NewProbe(cfg.ProbeOptions(), term),
		perf.WithLogger(log.Named("perf")),
		perf.WithStatus(stats),
	)
	manager.Initialize()

	loop := engine.NewFrameLoop(engine.WallClock{}, 0)
	stopMonitoring := manager.StartMonitoring(loop)
	defer stopMonitoring()

	events := terminal.NewDispatcher()
	events.On(terminal.EventKey, func(ev terminal.Event) {
		if isQuitKey(ev) {
			cancel()
		}
	})

	opts := []scene.Option{
		scene.WithLogger(log.Named("scene")),
		scene.WithStatus(stats),
		scene.WithPixelRatio(cfg.PixelRatio),
		scene.WithHUD(cfg.HUD),
	}
	if cfg.Seed != 0 {
		opts = append(opts, scene.WithSeed(cfg.Seed))
	}

	if cfg.Audio {
		ambience := audio.NewAmbience(log.Named("audio"))
		if err := ambience.Initialize(); err != nil {
			log.Warn("audio unavailable, continuing silent", zap.Error(err))
		}
		defer ambience.Close()
		opts = append(opts, scene.WithAmbience(ambience))
	}

	if cfg.MetricsAddr != "" {
		stopMetrics := serveMetrics(cfg.MetricsAddr, stats, log)
		defer stopMetrics()
	}

	renderer := scene.New(term, loop, events, manager, opts...)
	var unmount func()
	loop.Post(func() {
		u, err := renderer.Mount()
		if err != nil {
			log.Warn("particle field unavailable", zap.Error(err))
			return
		}
		unmount = u
	})

	go terminal.Pump(ctx, term, loop, events)

	err = loop.Run(ctx)
	if unmount != nil {
		unmount()
	}
	return err
}

func isQuitKey(ev terminal.Event) bool {
	switch ev.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune == 'q' || ev.Rune == 'Q'
	default:
		return false
	}
}
