package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/rainfield/config"
	"github.com/lixenwraith/rainfield/engine"
	"github.com/lixenwraith/rainfield/parameter"
	"github.com/lixenwraith/rainfield/perf"
	"github.com/lixenwraith/rainfield/scene"
	"github.com/lixenwraith/rainfield/status"
	"github.com/lixenwraith/rainfield/terminal"
)

type benchOptions struct {
	frames int
	cols   int
	rows   int
}

type benchReport struct {
	Frames     int           `yaml:"frames"`
	Drawn      int64         `yaml:"frames_drawn"`
	Particles  int64         `yaml:"particles_final"`
	MeanMs     float64       `yaml:"frame_mean_ms"`
	P95Ms      float64       `yaml:"frame_p95_ms"`
	MaxMs      float64       `yaml:"frame_max_ms"`
	Downgrades int64         `yaml:"downgrades"`
	LongTasks  int64         `yaml:"long_tasks"`
	Initial    perf.Settings `yaml:"initial"`
	Final      perf.Settings `yaml:"final"`
}

func newBenchCmd(f *rootFlags) *cobra.Command {
	opts := benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Render headless frames and report frame cost and degradation decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			if opts.frames <= 0 || opts.cols <= 0 || opts.rows <= 0 {
				return fmt.Errorf("frames, cols and rows must be positive")
			}
			log, err := newLogger(cfg.Debug, cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runBench(cmd.Context(), cfg, opts, log, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", 240, "frames to render")
	cmd.Flags().IntVar(&opts.cols, "cols", 240, "simulated terminal columns")
	cmd.Flags().IntVar(&opts.rows, "rows", 67, "simulated terminal rows")
	return cmd
}

// runBench drives the full scene against a simulated screen at the display interval
// The loop runs on the wall clock so slow frames show up in the frame rate sampler
func runBench(ctx context.Context, cfg config.Config, opts benchOptions, log *zap.Logger, w io.Writer) error {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := terminal.Open(sim, terminal.ColorModeTrueColor)
	if err != nil {
		return err
	}
	defer screen.Fini()
	sim.SetSize(opts.cols, opts.rows)

	probe := perf.NewProbe(cfg.ProbeOptions(), screen)
	env := perf.StaticEnvironment{Caps: probe.Capabilities(), View: probe.Viewport()}

	stats := status.NewRegistry()
	manager := perf.NewManager(env, perf.WithLogger(log.Named("perf")), perf.WithStatus(stats))
	manager.Initialize()
	initial := manager.Settings()

	loop := engine.NewFrameLoop(engine.WallClock{}, 0)
	stopMonitoring := manager.StartMonitoring(loop)
	defer stopMonitoring()

	sceneOpts := []scene.Option{
		scene.WithLogger(log.Named("scene")),
		scene.WithStatus(stats),
		scene.WithPixelRatio(cfg.PixelRatio),
	}
	if cfg.Seed != 0 {
		sceneOpts = append(sceneOpts, scene.WithSeed(cfg.Seed))
	}
	renderer := scene.New(screen, loop, terminal.NewDispatcher(), manager, sceneOpts...)
	unmount, err := renderer.Mount()
	if err != nil {
		return err
	}
	defer unmount()

	interval := parameter.FrameUpdateInterval
	costs := make([]time.Duration, 0, opts.frames)
	for range opts.frames {
		if ctx.Err() != nil {
			break
		}
		start := time.Now()
		loop.Step()
		cost := time.Since(start)
		costs = append(costs, cost)
		if cost < interval {
			time.Sleep(interval - cost)
		}
	}

	mean, p95, peak := frameStats(costs)
	return encodeYAML(w, benchReport{
		Frames:     len(costs),
		Drawn:      stats.Ints.Get(parameter.StatFrames).Load(),
		Particles:  stats.Ints.Get(parameter.StatParticles).Load(),
		MeanMs:     mean,
		P95Ms:      p95,
		MaxMs:      peak,
		Downgrades: stats.Ints.Get(parameter.StatDowngrades).Load(),
		LongTasks:  stats.Ints.Get(parameter.StatLongTasks).Load(),
		Initial:    initial,
		Final:      manager.Settings(),
	})
}

// frameStats returns mean, 95th percentile and max in milliseconds
func frameStats(costs []time.Duration) (mean, p95, peak float64) {
	if len(costs) == 0 {
		return 0, 0, 0
	}
	sorted := slices.Clone(costs)
	slices.Sort(sorted)

	var total time.Duration
	for _, c := range sorted {
		total += c
	}
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

	idx := int(math.Ceil(0.95*float64(len(sorted)))) - 1
	return ms(total) / float64(len(sorted)), ms(sorted[idx]), ms(sorted[len(sorted)-1])
}
