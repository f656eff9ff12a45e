package sink

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phamduc/solwatch/internal/core/domain"
	"github.com/phamduc/solwatch/internal/geyser"
)

// TransactionSink consumes flattened transactions. Implementations must be
// safe to call from the receive loop's goroutine; their latency directly
// throttles stream consumption.
type TransactionSink interface {
	Consume(ctx context.Context, tx *domain.Transaction) error
}

// Fanout converts each transaction update once and forwards it to every
// configured sink in order. It implements the stream handler contract.
type Fanout struct {
	sinks []TransactionSink
	log   *slog.Logger
}

// NewFanout builds a fanout over the given sinks.
func NewFanout(log *slog.Logger, sinks ...TransactionSink) *Fanout {
	if log == nil {
		log = slog.Default()
	}
	return &Fanout{sinks: sinks, log: log}
}

// HandleTransaction dispatches one update to all sinks. A failing sink does
// not stop the others; all failures are joined into the returned error.
func (f *Fanout) HandleTransaction(ctx context.Context, upd *geyser.SubscribeUpdateTransaction, endpoint string) error {
	tx := toDomain(upd, endpoint)

	var errs []error
	for _, s := range f.sinks {
		if err := s.Consume(ctx, tx); err != nil {
			f.log.Error("sink failed", "signature", tx.Signature, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
