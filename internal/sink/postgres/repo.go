package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/phamduc/solwatch/internal/core/domain"
)

// Repo persists streamed transactions. It implements the sink contract.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a transaction repository over an open handle.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Consume upserts one transaction. Transient failures are retried with a
// short constant backoff so a blip in the database does not drop updates;
// after the retry budget the error is surfaced to the fanout.
func (r *Repo) Consume(ctx context.Context, tx *domain.Transaction) error {
	backoff := retry.WithMaxRetries(3, retry.NewConstant(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.save(ctx, tx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (r *Repo) save(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			signature, slot, tx_index, endpoint, is_vote, fee, compute_units, status, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (signature) DO UPDATE SET
			slot = EXCLUDED.slot,
			status = EXCLUDED.status
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.Signature, tx.Slot, tx.Index, tx.Endpoint,
		tx.IsVote, tx.Fee, tx.ComputeUnits, string(tx.Status), tx.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", tx.Signature, err)
	}
	return nil
}

// CountBySlot returns how many transactions were stored for a slot.
func (r *Repo) CountBySlot(ctx context.Context, slot uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE slot = $1`, slot,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for slot %d: %w", slot, err)
	}
	return n, nil
}
