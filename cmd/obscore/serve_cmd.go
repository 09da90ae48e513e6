package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ksiaz/obscore/internal/httpapi"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string
	var tickSec float64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP snapshot/metrics surface, advancing system time on a wall-clock tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, _, err := loadSystem(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			router := httpapi.NewRouter(sys)
			srv := &http.Server{Addr: addr, Handler: router}

			go func() {
				log.Info().Str("addr", addr).Msg("obscore serve: listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("obscore serve: http server failed")
				}
			}()

			ticker := time.NewTicker(time.Duration(tickSec * float64(time.Second)))
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return srv.Shutdown(shutdownCtx)
				case now := <-ticker.C:
					if err := sys.AdvanceTime(float64(now.UnixNano()) / 1e9); err != nil {
						log.Error().Err(err).Msg("obscore serve: advance_time rejected, system halted")
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().Float64Var(&tickSec, "tick-sec", 1.0, "wall-clock interval between AdvanceTime calls")

	return cmd
}
