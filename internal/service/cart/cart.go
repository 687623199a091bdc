package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repository/snapshot"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrBuyerInfo is returned when the buyer name or city is missing.
	ErrBuyerInfo = errors.New("buyer name and city required")
)

// Channel delivers an order message out of process. The cart never learns
// whether the message was actually sent.
type Channel interface {
	Link(message string) string
}

// Cart holds one session's lines. It transitions under a closed set of
// operations; every mutation after hydration persists the snapshot
// best-effort. Writes before hydration are suppressed so an empty initial
// state cannot overwrite a stored cart that has not been loaded yet.
type Cart struct {
	mu        sync.Mutex
	sessionID string
	lines     []domain.CartLine
	hydrated  bool
	store     snapshot.Store
	logger    *log.Logger
}

func New(sessionID string, store snapshot.Store, logger *log.Logger) *Cart {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cart{sessionID: sessionID, store: store, logger: logger}
}

// Hydrate restores the line collection from the persisted snapshot. Any
// malformed payload degrades to an empty cart; this path never fails.
// Hydration happens at most once per cart.
func (c *Cart) Hydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hydrated {
		return
	}
	c.hydrated = true

	payload, err := c.store.Get(ctx, c.sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Printf("cart: hydrate session=%s error=%v", c.sessionID, err)
		}
		return
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(payload, &lines); err != nil {
		c.logger.Printf("cart: hydrate session=%s malformed snapshot, starting empty", c.sessionID)
		return
	}
	for _, l := range lines {
		if l.Quantity <= 0 || l.Kg <= 0 || l.Product.ID == "" {
			c.logger.Printf("cart: hydrate session=%s invalid line, starting empty", c.sessionID)
			return
		}
	}
	c.lines = lines
}

// Add merges by (product id, kg): an existing line gains quantity, otherwise
// a new line with quantity 1 is appended in insertion order.
func (c *Cart) Add(ctx context.Context, product domain.ProductSnapshot, kg int, pricePerKg float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID && c.lines[i].Kg == kg {
			c.lines[i].Quantity++
			c.persist(ctx)
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		Product:    product,
		Kg:         kg,
		PricePerKg: pricePerKg,
		Quantity:   1,
	})
	c.persist(ctx)
}

// Increment adds one to the matching line's quantity. No-op when no line
// matches the (product id, kg) key.
func (c *Cart) Increment(ctx context.Context, productID string, kg int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == productID && c.lines[i].Kg == kg {
			c.lines[i].Quantity++
			c.persist(ctx)
			return
		}
	}
}

// Decrement removes one from the matching line's quantity and drops the line
// when it reaches zero. No-op when no line matches.
func (c *Cart) Decrement(ctx context.Context, productID string, kg int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == productID && c.lines[i].Kg == kg {
			c.lines[i].Quantity--
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			c.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and erases the persisted snapshot immediately.
// Idempotent: clearing an empty cart still deletes any stale snapshot.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked(ctx)
}

func (c *Cart) clearLocked(ctx context.Context) {
	c.lines = nil
	if err := c.store.Delete(ctx, c.sessionID); err != nil {
		c.logger.Printf("cart: clear session=%s delete snapshot error=%v", c.sessionID, err)
	}
}

// Idle reports whether the cart has hydrated and holds no lines. An idle
// cart can be dropped from memory and rebuilt from its snapshot slot on the
// next touch.
func (c *Cart) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hydrated && len(c.lines) == 0
}

// Lines returns a copy of the line collection in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Totals derives the item count and grand total from the current lines.
// Never cached: recomputed on every call.
func (c *Cart) Totals() domain.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalsOf(c.lines)
}

func totalsOf(lines []domain.CartLine) domain.CartTotals {
	var t domain.CartTotals
	for _, l := range lines {
		t.ItemCount += l.Quantity
		t.GrandTotal += l.Total()
	}
	return t
}

// OrderMessage validates and builds the checkout summary without mutating
// the cart.
func (c *Cart) OrderMessage(business, name, city, notes string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buildOrderMessage(c.lines, business, name, city, notes)
}

// Checkout builds the order message, hands it to the channel and
// unconditionally clears the cart. The hand-off is fire-and-forget: the cart
// is emptied whether or not the buyer completes the external send.
func (c *Cart) Checkout(ctx context.Context, ch Channel, business, name, city, notes string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	message, err := buildOrderMessage(c.lines, business, name, city, notes)
	if err != nil {
		return "", err
	}
	link := ch.Link(message)
	c.clearLocked(ctx)
	return link, nil
}

// persist writes the snapshot best-effort. Called with the lock held; a
// storage failure is logged and swallowed, never returned to the mutation.
func (c *Cart) persist(ctx context.Context) {
	if !c.hydrated {
		return
	}
	payload, err := json.Marshal(c.lines)
	if err != nil {
		c.logger.Printf("cart: persist session=%s marshal error=%v", c.sessionID, err)
		return
	}
	if err := c.store.Put(ctx, c.sessionID, payload); err != nil {
		c.logger.Printf("cart: persist session=%s error=%v", c.sessionID, err)
	}
}
