package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/rainfield/config"
)

// rootFlags hold persistent flag values; only flags set on the command line override config
type rootFlags struct {
	configPath string
	dotEnv     string

	debug   bool
	logFile string

	pixelRatio   int
	reduceMotion bool
	connection   string
	color        string
	seed         uint64
	hud          bool
	audio        bool
	metricsAddr  string

	cores    int
	memoryGB float64
	mobile   bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:          "rainfield",
		Short:        "Adaptive raindrop particle field for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.Debug, cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runScene(cmd.Context(), cfg, log)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", config.DefaultConfigPath, "path to YAML config")
	pf.StringVar(&f.dotEnv, "env-file", ".env", "dotenv file loaded before RAINFIELD_* variables")
	pf.BoolVar(&f.debug, "debug", false, "write debug logs to --log-file")
	pf.StringVar(&f.logFile, "log-file", "", "debug log destination")
	pf.IntVar(&f.pixelRatio, "pixel-ratio", 0, "canvas supersampling factor (1-4)")
	pf.BoolVar(&f.reduceMotion, "reduce-motion", false, "request reduced motion")
	pf.StringVar(&f.connection, "connection", "", "effective connection class: slow-2g, 2g, 3g, 4g")
	pf.StringVar(&f.color, "color", "", "color mode: auto, truecolor, 256")
	pf.Uint64Var(&f.seed, "seed", 0, "particle RNG seed; 0 is random")
	pf.BoolVar(&f.hud, "hud", false, "show the status line")
	pf.BoolVar(&f.audio, "audio", false, "play rain ambience")
	pf.StringVar(&f.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pf.IntVar(&f.cores, "cores", 0, "emulate a CPU core count")
	pf.Float64Var(&f.memoryGB, "memory-gb", 0, "emulate installed memory in GB")
	pf.BoolVar(&f.mobile, "mobile", false, "emulate a mobile device")

	root.AddCommand(newProbeCmd(f), newBenchCmd(f))
	return root
}

// load resolves the layered configuration and applies flags the user set explicitly
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	cfg, err := config.Load(config.LoadOptions{
		Path:     f.configPath,
		Explicit: flags.Changed("config"),
		DotEnv:   f.dotEnv,
	})
	if err != nil {
		return cfg, err
	}

	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("pixel-ratio") {
		cfg.PixelRatio = f.pixelRatio
	}
	if flags.Changed("reduce-motion") {
		cfg.ReduceMotion = f.reduceMotion
	}
	if flags.Changed("connection") {
		cfg.Connection = f.connection
	}
	if flags.Changed("color") {
		cfg.ColorMode = f.color
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("hud") {
		cfg.HUD = f.hud
	}
	if flags.Changed("audio") {
		cfg.Audio = f.audio
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = f.metricsAddr
	}
	if flags.Changed("cores") {
		cfg.Device.Cores = f.cores
	}
	if flags.Changed("memory-gb") {
		cfg.Device.MemoryGB = f.memoryGB
	}
	if flags.Changed("mobile") {
		mobile := f.mobile
		cfg.Device.Mobile = &mobile
	}
	return cfg, cfg.Validate()
}
