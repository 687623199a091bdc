package snapshot

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM cart_snapshots WHERE session_id = $1`, sessionID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		s.logger.Printf("snapshot store: get session=%s error=%v", sessionID, err)
		return nil, err
	}
	return payload, nil
}

func (s *postgresStore) Put(ctx context.Context, sessionID string, payload []byte) error {
	const q = `
INSERT INTO cart_snapshots (session_id, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (session_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
`
	if _, err := s.pool.Exec(ctx, q, sessionID, payload); err != nil {
		s.logger.Printf("snapshot store: put session=%s error=%v", sessionID, err)
		return err
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM cart_snapshots WHERE session_id = $1`, sessionID); err != nil {
		s.logger.Printf("snapshot store: delete session=%s error=%v", sessionID, err)
		return err
	}
	return nil
}
