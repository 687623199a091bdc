package cart

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"storefront/internal/repository/snapshot"
)

// sweepInterval bounds how often Session scans for abandoned carts.
const sweepInterval = 10 * time.Minute

// Manager hands out one Cart per storefront session. The cart is hydrated
// from its snapshot slot on first access and kept in memory afterwards.
// Empty carts are swept periodically so drive-by sessions that never add a
// line do not accumulate; an evicted session simply rehydrates on its next
// touch.
type Manager struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	store     snapshot.Store
	logger    *log.Logger
	lastSweep time.Time
}

func NewManager(store snapshot.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		carts:     make(map[string]*Cart),
		store:     store,
		logger:    logger,
		lastSweep: time.Now(),
	}
}

func (m *Manager) Session(ctx context.Context, sessionID string) *Cart {
	m.mu.Lock()
	m.sweepLocked()
	c, ok := m.carts[sessionID]
	if !ok {
		c = New(sessionID, m.store, m.logger)
		m.carts[sessionID] = c
	}
	m.mu.Unlock()

	c.Hydrate(ctx)
	return c
}

// sweepLocked drops hydrated empty carts. Carts with lines always survive;
// carts still waiting on hydration are left alone.
func (m *Manager) sweepLocked() {
	if time.Since(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = time.Now()

	before := len(m.carts)
	for id, c := range m.carts {
		if c.Idle() {
			delete(m.carts, id)
		}
	}
	if dropped := before - len(m.carts); dropped > 0 {
		m.logger.Printf("cart: swept %d abandoned sessions, %d remain", dropped, len(m.carts))
	}
}
