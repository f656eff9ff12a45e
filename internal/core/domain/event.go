package domain

// Event is an emitted stream event, published to downstream consumers.
type Event struct {
	ID          string         `json:"id"`
	EventType   EventType      `json:"event_type"`
	Endpoint    string         `json:"endpoint"`
	Slot        uint64         `json:"slot"`
	Transaction *Transaction   `json:"transaction,omitempty"`
	EmittedAt   int64          `json:"emitted_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type EventType string

const (
	EventTypeTransactionObserved EventType = "transaction_observed"
	EventTypeTransactionFailed   EventType = "transaction_failed"
)
