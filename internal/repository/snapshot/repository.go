package snapshot

import "context"

// Store is a single named slot per session holding the serialized cart.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Put(ctx context.Context, sessionID string, payload []byte) error
	Delete(ctx context.Context, sessionID string) error
}
