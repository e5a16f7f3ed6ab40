package shipping

import (
	"context"
	"testing"

	"github.com/figurehub/figurehub-backend/pkg/config"
)

func TestQuoteRoundsUpToWholeKilos(t *testing.T) {
	q := NewQuoter(config.CarrierConfig{QuoteBaseFee: 22000, QuotePerKilo: 5500})
	ctx := context.Background()

	cases := []struct {
		grams int
		want  int64
	}{
		{0, 22000},
		{1, 27500},
		{999, 27500},
		{1000, 27500},
		{1001, 33000},
		{4200, 49500},
	}
	for _, tc := range cases {
		got, err := q.Quote(ctx, tc.grams)
		if err != nil {
			t.Fatalf("Quote(%d): %v", tc.grams, err)
		}
		if got != tc.want {
			t.Errorf("Quote(%d) = %d, want %d", tc.grams, got, tc.want)
		}
	}
}

func TestQuoteNegativeWeight(t *testing.T) {
	q := NewQuoter(config.CarrierConfig{QuoteBaseFee: 22000, QuotePerKilo: 5500})
	if _, err := q.Quote(context.Background(), -1); err == nil {
		t.Fatal("expected error for negative weight")
	}
}
