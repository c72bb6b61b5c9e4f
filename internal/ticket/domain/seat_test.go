package domain_test

import (
	"testing"

	"github.com/transgare/backoffice/internal/ticket/domain"
)

func TestValidSeat(t *testing.T) {
	cases := []struct {
		name       string
		label      string
		totalSeats int
		want       bool
	}{
		{"first seat", "A1", 40, true},
		{"last seat of a full coach", "J4", 40, true},
		{"row past capacity", "K1", 40, false},
		{"mid inventory", "B2", 10, true},
		{"ordinal just past capacity", "C3", 10, false},
		{"position past row width", "A5", 40, false},
		{"position zero", "A0", 40, false},
		{"lowercase row", "a1", 40, false},
		{"missing position", "A", 40, false},
		{"arbitrary label", "ZZ-999", 40, false},
		{"empty", "", 40, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.ValidSeat(tc.label, tc.totalSeats); got != tc.want {
				t.Errorf("ValidSeat(%q, %d) = %v, want %v", tc.label, tc.totalSeats, got, tc.want)
			}
		})
	}
}
