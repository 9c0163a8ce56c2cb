// Command storebot runs the shop's Telegram bot: main menu, tile calculator
// with PDF invoices, quote requests, order tracking, and the offer archive.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eamarbiyout/storebot/pkg/logging"
)

func main() {
	root := &cobra.Command{
		Use:   "storebot",
		Short: "Telegram bot for the ceramics and sanitary-ware shop",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			logging.Setup()
		},
	}
	root.AddCommand(newServeCmd(), newWebhookCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
