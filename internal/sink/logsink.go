package sink

import (
	"context"
	"log/slog"

	"github.com/phamduc/solwatch/internal/core/domain"
)

// Log is the default sink: it writes one structured line per transaction.
type Log struct {
	log *slog.Logger
}

// NewLog builds a logging sink.
func NewLog(log *slog.Logger) *Log {
	if log == nil {
		log = slog.Default()
	}
	return &Log{log: log}
}

func (l *Log) Consume(ctx context.Context, tx *domain.Transaction) error {
	l.log.Info("transaction",
		"signature", tx.Signature,
		"slot", tx.Slot,
		"status", tx.Status,
		"fee", tx.Fee,
		"vote", tx.IsVote,
		"endpoint", tx.Endpoint,
	)
	return nil
}
