package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapFaultKeepsSentinelIdentity(t *testing.T) {
	sentinel := NewFault(FaultConflict, "seat already held")

	wrapped := WrapFault(sentinel, "seat %s on trip %s", "A1", "trip-1")
	if !errors.Is(wrapped, sentinel) {
		t.Fatal("wrapped fault does not match its sentinel")
	}
	if wrapped.Error() != "seat A1 on trip trip-1: seat already held" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestKindOf(t *testing.T) {
	sentinel := NewFault(FaultNotFound, "ticket not found")

	tests := []struct {
		name string
		err  error
		want FaultKind
	}{
		{"sentinel", sentinel, FaultNotFound},
		{"wrapped sentinel", WrapFault(sentinel, "ticket %q", "t-1"), FaultNotFound},
		{"fmt wrapped", fmt.Errorf("lookup: %w", sentinel), FaultNotFound},
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %q, want %q", got, tt.want)
			}
		})
	}
}
