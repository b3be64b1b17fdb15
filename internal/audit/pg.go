package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSink persists audit entries into the audit_logs table so the admin
// panel can page through them.
type PGSink struct {
	pool *pgxpool.Pool
}

// NewPGSink returns a PGSink.
func NewPGSink(pool *pgxpool.Pool) *PGSink {
	return &PGSink{pool: pool}
}

// Persist implements Sink.
func (s *PGSink) Persist(ctx context.Context, action string, meta map[string]any, at time.Time) error {
	if s == nil || s.pool == nil {
		return errors.New("audit sink not initialised")
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_logs (action, meta, occurred_at) VALUES ($1, $2, $3)`,
		action, metaJSON, at)
	return err
}
