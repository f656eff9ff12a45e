package sink

import (
	"encoding/hex"
	"time"

	"github.com/phamduc/solwatch/internal/core/domain"
	"github.com/phamduc/solwatch/internal/geyser"
)

// toDomain flattens a geyser transaction update into the domain shape
// shared by every sink.
func toDomain(upd *geyser.SubscribeUpdateTransaction, endpoint string) *domain.Transaction {
	tx := &domain.Transaction{
		Slot:       upd.Slot,
		Endpoint:   endpoint,
		Status:     domain.TxStatusSuccess,
		ReceivedAt: time.Now().UTC(),
	}

	info := upd.Transaction
	if info == nil {
		return tx
	}

	tx.Signature = hex.EncodeToString(info.Signature)
	tx.IsVote = info.IsVote
	tx.Index = info.Index

	if meta := info.Meta; meta != nil {
		tx.Fee = meta.Fee
		tx.LogMessages = meta.LogMessages
		if meta.ComputeUnitsConsumed != nil {
			tx.ComputeUnits = *meta.ComputeUnitsConsumed
		}
		if meta.Err != nil {
			tx.Status = domain.TxStatusFailed
		}
	}

	return tx
}
