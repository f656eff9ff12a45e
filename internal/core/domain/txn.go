package domain

import "time"

// Transaction is a flattened view of one streamed Solana transaction,
// tagged with the endpoint identity it arrived from.
type Transaction struct {
	Signature    string    `json:"signature"`
	Slot         uint64    `json:"slot"`
	Index        uint64    `json:"index"`
	Endpoint     string    `json:"endpoint"`
	IsVote       bool      `json:"is_vote"`
	Fee          uint64    `json:"fee"`
	ComputeUnits uint64    `json:"compute_units"`
	Status       TxStatus  `json:"status"`
	LogMessages  []string  `json:"log_messages,omitempty"`
	ReceivedAt   time.Time `json:"received_at"`
}

type TxStatus string

const (
	TxStatusSuccess TxStatus = "success"
	TxStatusFailed  TxStatus = "failed"
)
