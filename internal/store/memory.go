package store

import (
	"context"
	"sort"
	"sync"

	"github.com/eamarbiyout/storebot/internal/models"
)

// Ensure Memory implements Store
var _ Store = (*Memory)(nil)

// Memory is an in-memory Store. It backs tests and ad-hoc runs without a
// database path; state does not survive a restart.
type Memory struct {
	mu     sync.RWMutex
	states map[stateKey][]byte
	orders map[string]models.Order
	offers map[string][]models.Offer
}

type stateKey struct {
	conversationID int64
	ns             string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		states: make(map[stateKey][]byte),
		orders: make(map[string]models.Order),
		offers: make(map[string][]models.Offer),
	}
}

func (m *Memory) GetState(_ context.Context, conversationID int64, ns string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.states[stateKey{conversationID, ns}]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) PutState(_ context.Context, conversationID int64, ns string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.states[stateKey{conversationID, ns}] = stored
	return nil
}

func (m *Memory) ClearState(_ context.Context, conversationID int64, ns string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, stateKey{conversationID, ns})
	return nil
}

func (m *Memory) GetOrder(_ context.Context, code string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[code]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (m *Memory) SeedOrders(_ context.Context, orders []models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range orders {
		m.orders[o.Code] = o
	}
	return nil
}

func (m *Memory) PutOffer(_ context.Context, offer models.Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.offers[offer.Size]
	for i := range list {
		if list[i].Code == offer.Code {
			list[i] = offer
			return nil
		}
	}
	m.offers[offer.Size] = append(list, offer)
	return nil
}

func (m *Memory) ListOffers(_ context.Context, size string) ([]models.Offer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Offer, len(m.offers[size]))
	copy(out, m.offers[size])
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *Memory) Close() error { return nil }
