package geyser

import (
	"fmt"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Hand-declared subset of the Geyser proto messages, trimmed to what the
// subscription stream needs. Declaring them here with protobuf struct tags
// avoids a codegen step; the gRPC codec handles them as legacy messages.
// Field numbers follow the upstream geyser.proto and must not be changed.

// CommitmentLevel mirrors the geyser commitment enum.
type CommitmentLevel int32

const (
	CommitmentProcessed CommitmentLevel = 0
	CommitmentConfirmed CommitmentLevel = 1
	CommitmentFinalized CommitmentLevel = 2
)

// SubscribeRequest is sent on the subscribe stream. The first message
// establishes the filters; later messages carry ping replies.
type SubscribeRequest struct {
	Transactions map[string]*SubscribeRequestFilterTransactions `protobuf:"bytes,3,rep,name=transactions"`
	Commitment   *int32                                         `protobuf:"varint,6,opt,name=commitment"`
	Ping         *SubscribeRequestPing                          `protobuf:"bytes,9,opt,name=ping"`
	FromSlot     *uint64                                        `protobuf:"varint,11,opt,name=from_slot"`
}

func (x *SubscribeRequest) Reset()         { *x = SubscribeRequest{} }
func (x *SubscribeRequest) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeRequest) ProtoMessage()  {}

// SubscribeRequestFilterTransactions selects which transactions the server
// streams back. Nil boolean fields mean "no constraint".
type SubscribeRequestFilterTransactions struct {
	Vote            *bool    `protobuf:"varint,1,opt,name=vote"`
	Failed          *bool    `protobuf:"varint,2,opt,name=failed"`
	Signature       *string  `protobuf:"bytes,5,opt,name=signature"`
	AccountInclude  []string `protobuf:"bytes,3,rep,name=account_include"`
	AccountExclude  []string `protobuf:"bytes,4,rep,name=account_exclude"`
	AccountRequired []string `protobuf:"bytes,6,rep,name=account_required"`
}

func (x *SubscribeRequestFilterTransactions) Reset() {
	*x = SubscribeRequestFilterTransactions{}
}
func (x *SubscribeRequestFilterTransactions) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeRequestFilterTransactions) ProtoMessage()  {}

// SubscribeRequestPing is the client half of the in-band keepalive.
type SubscribeRequestPing struct {
	Id int32 `protobuf:"varint,1,opt,name=id"`
}

func (x *SubscribeRequestPing) Reset()         { *x = SubscribeRequestPing{} }
func (x *SubscribeRequestPing) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeRequestPing) ProtoMessage()  {}

// SubscribeUpdate is one inbound message on the subscribe stream. The
// upstream proto models the variants as a oneof; exactly one of the variant
// pointers is set per update.
type SubscribeUpdate struct {
	Filters     []string                    `protobuf:"bytes,1,rep,name=filters"`
	Slot        *SubscribeUpdateSlot        `protobuf:"bytes,3,opt,name=slot"`
	Transaction *SubscribeUpdateTransaction `protobuf:"bytes,4,opt,name=transaction"`
	Ping        *SubscribeUpdatePing        `protobuf:"bytes,6,opt,name=ping"`
	Pong        *SubscribeUpdatePong        `protobuf:"bytes,9,opt,name=pong"`
	CreatedAt   *timestamppb.Timestamp      `protobuf:"bytes,11,opt,name=created_at"`
}

func (x *SubscribeUpdate) Reset()         { *x = SubscribeUpdate{} }
func (x *SubscribeUpdate) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeUpdate) ProtoMessage()  {}

// SubscribeUpdateSlot reports slot progression.
type SubscribeUpdateSlot struct {
	Slot   uint64  `protobuf:"varint,1,opt,name=slot"`
	Parent *uint64 `protobuf:"varint,2,opt,name=parent"`
	Status int32   `protobuf:"varint,3,opt,name=status"`
}

func (x *SubscribeUpdateSlot) Reset()         { *x = SubscribeUpdateSlot{} }
func (x *SubscribeUpdateSlot) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeUpdateSlot) ProtoMessage()  {}

// SubscribeUpdateTransaction carries one matched transaction.
type SubscribeUpdateTransaction struct {
	Transaction *SubscribeUpdateTransactionInfo `protobuf:"bytes,1,opt,name=transaction"`
	Slot        uint64                          `protobuf:"varint,2,opt,name=slot"`
}

func (x *SubscribeUpdateTransaction) Reset()         { *x = SubscribeUpdateTransaction{} }
func (x *SubscribeUpdateTransaction) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeUpdateTransaction) ProtoMessage()  {}

// SubscribeUpdateTransactionInfo is the transaction body and status meta.
type SubscribeUpdateTransactionInfo struct {
	Signature []byte                 `protobuf:"bytes,1,opt,name=signature"`
	IsVote    bool                   `protobuf:"varint,2,opt,name=is_vote"`
	Meta      *TransactionStatusMeta `protobuf:"bytes,4,opt,name=meta"`
	Index     uint64                 `protobuf:"varint,5,opt,name=index"`
}

func (x *SubscribeUpdateTransactionInfo) Reset()         { *x = SubscribeUpdateTransactionInfo{} }
func (x *SubscribeUpdateTransactionInfo) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeUpdateTransactionInfo) ProtoMessage()  {}

// TransactionStatusMeta is the execution result subset we consume.
type TransactionStatusMeta struct {
	Err                  *TransactionError `protobuf:"bytes,1,opt,name=err"`
	Fee                  uint64            `protobuf:"varint,2,opt,name=fee"`
	PreBalances          []uint64          `protobuf:"varint,3,rep,name=pre_balances"`
	PostBalances         []uint64          `protobuf:"varint,4,rep,name=post_balances"`
	LogMessages          []string          `protobuf:"bytes,6,rep,name=log_messages"`
	ComputeUnitsConsumed *uint64           `protobuf:"varint,16,opt,name=compute_units_consumed"`
}

func (x *TransactionStatusMeta) Reset()         { *x = TransactionStatusMeta{} }
func (x *TransactionStatusMeta) String() string { return fmt.Sprintf("%+v", *x) }
func (x *TransactionStatusMeta) ProtoMessage()  {}

// TransactionError wraps the bincode-encoded error of a failed transaction.
type TransactionError struct {
	Err []byte `protobuf:"bytes,1,opt,name=err"`
}

func (x *TransactionError) Reset()         { *x = TransactionError{} }
func (x *TransactionError) String() string { return fmt.Sprintf("%+v", *x) }
func (x *TransactionError) ProtoMessage()  {}

// SubscribeUpdatePing is the server half of the in-band keepalive.
type SubscribeUpdatePing struct{}

func (x *SubscribeUpdatePing) Reset()         { *x = SubscribeUpdatePing{} }
func (x *SubscribeUpdatePing) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeUpdatePing) ProtoMessage()  {}

// SubscribeUpdatePong acknowledges a client ping.
type SubscribeUpdatePong struct {
	Id int32 `protobuf:"varint,1,opt,name=id"`
}

func (x *SubscribeUpdatePong) Reset()         { *x = SubscribeUpdatePong{} }
func (x *SubscribeUpdatePong) String() string { return fmt.Sprintf("%+v", *x) }
func (x *SubscribeUpdatePong) ProtoMessage()  {}
