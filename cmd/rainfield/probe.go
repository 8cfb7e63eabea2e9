package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/rainfield/perf"
	"github.com/lixenwraith/rainfield/terminal"
)

type probeReport struct {
	Interactive  bool              `yaml:"interactive"`
	Score        int               `yaml:"score"`
	Capabilities perf.Capabilities `yaml:"capabilities"`
	Viewport     perf.Viewport     `yaml:"viewport"`
	Settings     perf.Settings     `yaml:"settings"`
}

func newProbeCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print measured capabilities and the settings they classify to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return writeProbe(cmd.OutOrStdout(), perf.NewProbe(cfg.ProbeOptions(), terminal.Stdout{}))
		},
	}
}

// writeProbe reports what classification would decide, even when a headless run would skip it
func writeProbe(w io.Writer, env perf.Environment) error {
	caps := env.Capabilities().Normalize()
	vp := env.Viewport()
	report := probeReport{
		Interactive:  env.Interactive(),
		Score:        perf.Score(caps),
		Capabilities: caps,
		Viewport:     vp,
		Settings:     perf.Detect(caps, vp),
	}
	return encodeYAML(w, report)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
