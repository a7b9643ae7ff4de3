package usecase

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"pricing_backend/internal/feature/holdings/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ValuationLine is one holding with its price, value and weight (percent of total).
type ValuationLine struct {
	Holding entity.Holding
	Price   decimal.Decimal
	Value   decimal.Decimal
	Weight  decimal.Decimal
}

// Valuation is the priced portfolio.
type Valuation struct {
	Lines    []ValuationLine
	Total    decimal.Decimal
	Currency string
}

// FormattedTotal returns the total formatted for display, e.g. "$2,000.00".
func (v Valuation) FormattedTotal() string {
	cur := money.GetCurrency(v.Currency)
	if cur == nil {
		return v.Total.StringFixed(2) + " " + v.Currency
	}
	minor := v.Total.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// Valuator prices holdings: the market price when known, otherwise the fallback.
type Valuator struct {
	fallback *FallbackResolver
	currency string
}

// NewValuator creates a Valuator reporting totals in currency (USD when empty).
func NewValuator(fallback *FallbackResolver, currency string) *Valuator {
	if currency == "" {
		currency = "USD"
	}
	return &Valuator{fallback: fallback, currency: currency}
}

// PriceOf returns the price used for valuation.
func (v *Valuator) PriceOf(h entity.Holding) float64 {
	if h.MarketPrice != nil {
		return *h.MarketPrice
	}
	return v.fallback.Resolve(h)
}

// Value computes line values, the total and per-line weights.
// Weights are 0 when the total is 0.
func (v *Valuator) Value(hs []entity.Holding) Valuation {
	out := Valuation{
		Lines:    make([]ValuationLine, 0, len(hs)),
		Total:    decimal.Zero,
		Currency: v.currency,
	}
	for _, h := range hs {
		price := decimal.NewFromFloat(v.PriceOf(h))
		value := decimal.NewFromFloat(h.Shares).Mul(price)
		out.Lines = append(out.Lines, ValuationLine{Holding: h, Price: price, Value: value})
		out.Total = out.Total.Add(value)
	}
	if out.Total.IsZero() {
		for i := range out.Lines {
			out.Lines[i].Weight = decimal.Zero
		}
		return out
	}
	for i := range out.Lines {
		out.Lines[i].Weight = out.Lines[i].Value.Div(out.Total).Mul(hundred)
	}
	return out
}
