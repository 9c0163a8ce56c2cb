package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot over long polling",
		Long: `Runs the bot with Telegram long polling, plus a small status
listener exposing /healthz and /metrics on PORT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			status := &http.Server{
				Addr:    ":" + app.cfg.Port,
				Handler: statusRouter(),
			}
			go func() {
				slog.Info("Status listener up", "addr", status.Addr)
				if err := status.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("Status listener failed", "error", err)
				}
			}()

			err = app.bot.Run(ctx)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := status.Shutdown(shutdownCtx); serr != nil {
				slog.Error("Status listener shutdown failed", "error", serr)
			}
			return err
		},
	}
}

func statusRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
