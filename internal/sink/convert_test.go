package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/phamduc/solwatch/internal/core/domain"
	"github.com/phamduc/solwatch/internal/geyser"
)

func TestToDomain(t *testing.T) {
	cu := uint64(4200)
	upd := &geyser.SubscribeUpdateTransaction{
		Slot: 31337,
		Transaction: &geyser.SubscribeUpdateTransactionInfo{
			Signature: []byte{0xde, 0xad, 0xbe, 0xef},
			IsVote:    true,
			Index:     7,
			Meta: &geyser.TransactionStatusMeta{
				Fee:                  5000,
				ComputeUnitsConsumed: &cu,
				LogMessages:          []string{"Program log: ok"},
			},
		},
	}

	tx := toDomain(upd, "grpc.test:443")

	if tx.Signature != "deadbeef" {
		t.Errorf("Signature = %q, want deadbeef", tx.Signature)
	}
	if tx.Slot != 31337 || tx.Index != 7 || !tx.IsVote {
		t.Errorf("unexpected fields: %+v", tx)
	}
	if tx.Fee != 5000 || tx.ComputeUnits != 4200 {
		t.Errorf("Fee/ComputeUnits = %d/%d, want 5000/4200", tx.Fee, tx.ComputeUnits)
	}
	if tx.Status != domain.TxStatusSuccess {
		t.Errorf("Status = %s, want success", tx.Status)
	}
	if tx.Endpoint != "grpc.test:443" {
		t.Errorf("Endpoint = %q", tx.Endpoint)
	}
}

func TestToDomainFailedTransaction(t *testing.T) {
	upd := &geyser.SubscribeUpdateTransaction{
		Slot: 1,
		Transaction: &geyser.SubscribeUpdateTransactionInfo{
			Signature: []byte{0x01},
			Meta: &geyser.TransactionStatusMeta{
				Err: &geyser.TransactionError{Err: []byte{0x00}},
			},
		},
	}

	if tx := toDomain(upd, "e"); tx.Status != domain.TxStatusFailed {
		t.Errorf("Status = %s, want failed", tx.Status)
	}
}

func TestToDomainMissingInfo(t *testing.T) {
	tx := toDomain(&geyser.SubscribeUpdateTransaction{Slot: 9}, "e")
	if tx.Slot != 9 || tx.Signature != "" {
		t.Errorf("unexpected: %+v", tx)
	}
}

type stubSink struct {
	seen []*domain.Transaction
	err  error
}

func (s *stubSink) Consume(ctx context.Context, tx *domain.Transaction) error {
	s.seen = append(s.seen, tx)
	return s.err
}

func TestFanoutContinuesPastFailingSink(t *testing.T) {
	bad := &stubSink{err: errors.New("down")}
	good := &stubSink{}
	f := NewFanout(nil, bad, good)

	err := f.HandleTransaction(context.Background(), &geyser.SubscribeUpdateTransaction{
		Transaction: &geyser.SubscribeUpdateTransactionInfo{Signature: []byte{0x02}},
	}, "e")

	if err == nil {
		t.Fatal("expected joined error")
	}
	if len(bad.seen) != 1 || len(good.seen) != 1 {
		t.Errorf("sink calls = %d/%d, want 1/1", len(bad.seen), len(good.seen))
	}
}
