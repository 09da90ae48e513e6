// Command obscore runs the constitutional observation substrate: the
// M1-M5 pipeline that turns raw exchange events into structural
// primitive snapshots, with no interpretive content crossing the
// snapshot boundary.
package main

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ksiaz/obscore/internal/config"
	"github.com/ksiaz/obscore/internal/governance"
)

const appName = "obscore"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	// else: leave the default JSON writer, so a piped/redirected stderr
	// (systemd, container logs) gets machine-parseable lines instead of
	// ANSI-colored console output.

	root := &cobra.Command{
		Use:     appName,
		Short:   "Constitutional observation substrate for perpetual-futures markets.",
		Version: "v0.1.0",
	}

	var configPath string
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the system configuration YAML file")

	root.AddCommand(newReplayCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("obscore: exiting")
	}
}

func loadSystem(configPath string) (*governance.System, config.SystemConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.SystemConfig{}, err
	}
	sys := governance.New(cfg, prometheus.DefaultRegisterer)
	return sys, cfg, nil
}
