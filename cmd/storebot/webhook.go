package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newWebhookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "webhook",
		Short: "Run the bot behind a Telegram webhook",
		Long: `Serves Telegram updates pushed to WEBHOOK_PATH on PORT instead of
polling. Registering the webhook URL with Telegram is left to the
deployment; the bot only consumes what arrives.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			r := chi.NewRouter()
			r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "error", err)
				}
			})
			r.Handle("/metrics", promhttp.Handler())
			r.Post(app.cfg.WebhookPath, func(w http.ResponseWriter, req *http.Request) {
				var update tgbotapi.Update
				if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
					slog.Warn("Rejecting malformed webhook payload", "error", err)
					http.Error(w, "bad request", http.StatusBadRequest)
					return
				}
				app.bot.HandleUpdate(req.Context(), update)
				w.WriteHeader(http.StatusOK)
			})

			server := &http.Server{
				Addr:    ":" + app.cfg.Port,
				Handler: r,
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Webhook server up", "addr", server.Addr, "path", app.cfg.WebhookPath)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			app.bot.NotifyStartup()

			select {
			case <-ctx.Done():
				slog.Info("Shutting down webhook server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "error", err)
					return err
				}
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}
}
