// Package metrics exposes the bot's Prometheus collectors. Served on /metrics
// by both the webhook server and the polling command's status listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Updates counts inbound Telegram updates by kind (message, callback).
	Updates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storebot_updates_total",
		Help: "Inbound Telegram updates processed, by update kind.",
	}, []string{"kind"})

	// Actions counts calculator actions handled by the flow engine.
	Actions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storebot_calculator_actions_total",
		Help: "Calculator actions handled, by action kind.",
	}, []string{"action"})

	// SpacesFinalized counts finalized priced spaces by category.
	SpacesFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storebot_spaces_finalized_total",
		Help: "Priced spaces appended to a session, by category.",
	}, []string{"category"})

	// InvoiceExports counts successfully rendered invoice documents.
	InvoiceExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storebot_invoice_exports_total",
		Help: "Invoice PDF documents rendered and delivered.",
	})

	// EmptyExports counts export attempts on an empty session.
	EmptyExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storebot_invoice_exports_empty_total",
		Help: "Invoice export attempts rejected because the session was empty.",
	})

	// OfferUploads counts archival image uploads by outcome (ok, failed).
	OfferUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storebot_offer_uploads_total",
		Help: "Offer archive image uploads, by outcome.",
	}, []string{"outcome"})
)
