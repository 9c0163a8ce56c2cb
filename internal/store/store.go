// Package store provides abstractions for the bot's persistent data: opaque
// per-conversation state blobs, trackable orders, and the offer image archive.
package store

import (
	"context"

	"github.com/eamarbiyout/storebot/internal/models"
)

// Store defines the storage operations the bot depends on. This abstraction
// keeps the conversation flow testable against the in-memory implementation
// and allows swapping the SQLite backend without touching callers.
type Store interface {
	// GetState returns the serialized state blob for (conversationID, ns),
	// or nil when no state has been stored yet. Namespaces keep the tile
	// calculator state and the menu form state independent.
	GetState(ctx context.Context, conversationID int64, ns string) ([]byte, error)

	// PutState stores the state blob for (conversationID, ns), replacing
	// any previous value.
	PutState(ctx context.Context, conversationID int64, ns string, data []byte) error

	// ClearState removes the state for (conversationID, ns). Clearing
	// absent state is not an error.
	ClearState(ctx context.Context, conversationID int64, ns string) error

	// GetOrder looks up a trackable order by code. Returns nil when the
	// code is unknown; an unknown code is a normal user typo, not an error.
	GetOrder(ctx context.Context, code string) (*models.Order, error)

	// SeedOrders upserts the given orders, typically from the store profile
	// at startup.
	SeedOrders(ctx context.Context, orders []models.Order) error

	// PutOffer records (or refreshes) one archived offer image.
	PutOffer(ctx context.Context, offer models.Offer) error

	// ListOffers returns the archived offers of one size collection,
	// ordered by code. The order is the browsing/pagination order.
	ListOffers(ctx context.Context, size string) ([]models.Offer, error)

	// Close releases any resources held by the store.
	Close() error
}
