package shipping

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/figurehub/figurehub-backend/pkg/config"
	pkgerrors "github.com/figurehub/figurehub-backend/pkg/errors"
)

// Quoter prices a parcel the way the carrier would bill us: base fee plus a
// per-kilo rate, weight rounded up to whole kilos. The customer pays the flat
// checkout fee instead; this quote is stored as original_shipping_fee so
// margin reports can compare the two.
type Quoter struct {
	baseFee int64
	perKilo int64
}

func NewQuoter(cfg config.CarrierConfig) *Quoter {
	return &Quoter{baseFee: cfg.QuoteBaseFee, perKilo: cfg.QuotePerKilo}
}

func (q *Quoter) Quote(_ context.Context, weightGrams int) (int64, error) {
	if weightGrams < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "weight cannot be negative")
	}
	if weightGrams == 0 {
		return q.baseFee, nil
	}
	kilos := decimal.NewFromInt(int64(weightGrams)).
		Div(decimal.NewFromInt(1000)).
		Ceil().
		IntPart()
	return q.baseFee + kilos*q.perKilo, nil
}
