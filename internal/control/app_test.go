package control

import (
	"testing"

	"github.com/phamduc/solwatch/internal/core/config"
	"github.com/phamduc/solwatch/internal/geyser"
)

func TestBuildSubscribeRequest(t *testing.T) {
	req := buildSubscribeRequest(config.FilterConfig{
		AccountInclude: []string{"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"},
		IncludeVotes:   false,
		IncludeFailed:  true,
		Commitment:     "finalized",
	})

	f, ok := req.Transactions["solwatch"]
	if !ok {
		t.Fatal("missing solwatch transactions filter")
	}
	if f.Vote == nil || *f.Vote {
		t.Error("votes should be excluded")
	}
	if f.Failed == nil || !*f.Failed {
		t.Error("failed transactions should be included")
	}
	if len(f.AccountInclude) != 1 {
		t.Errorf("AccountInclude = %v", f.AccountInclude)
	}
	if req.Commitment == nil || *req.Commitment != int32(geyser.CommitmentFinalized) {
		t.Errorf("Commitment = %v, want finalized", req.Commitment)
	}
}

func TestCommitmentLevelDefaultsToConfirmed(t *testing.T) {
	tests := []struct {
		in   string
		want geyser.CommitmentLevel
	}{
		{"processed", geyser.CommitmentProcessed},
		{"confirmed", geyser.CommitmentConfirmed},
		{"finalized", geyser.CommitmentFinalized},
		{"", geyser.CommitmentConfirmed},
		{"bogus", geyser.CommitmentConfirmed},
	}

	for _, tt := range tests {
		if got := commitmentLevel(tt.in); got != tt.want {
			t.Errorf("commitmentLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
