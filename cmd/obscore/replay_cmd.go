package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ksiaz/obscore/internal/types"
)

type replayLine struct {
	Timestamp float64        `json:"timestamp"`
	Symbol    string         `json:"symbol"`
	EventType string         `json:"event_type"`
	Payload   map[string]any `json:"payload"`
}

func newReplayCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Ingest a newline-delimited JSON event fixture and print the resulting snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, _, err := loadSystem(*configPath)
			if err != nil {
				return fmt.Errorf("obscore replay: %w", err)
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("obscore replay: open fixture: %w", err)
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			lineNo := 0
			for scanner.Scan() {
				lineNo++
				text := scanner.Text()
				if text == "" {
					continue
				}

				var line replayLine
				if err := json.Unmarshal([]byte(text), &line); err != nil {
					log.Warn().Int("line", lineNo).Err(err).Msg("obscore replay: skipping malformed line")
					continue
				}

				if err := sys.Ingest(line.Timestamp, line.Symbol, types.EventType(line.EventType), line.Payload); err != nil {
					log.Error().Int("line", lineNo).Err(err).Msg("obscore replay: system halted")
					break
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("obscore replay: scan fixture: %w", err)
			}

			snap := sys.Query(types.QuerySpec{Type: "snapshot"})
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to an NDJSON event fixture")
	cmd.MarkFlagRequired("file")

	return cmd
}
