package pricing

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/catalog"
)

var hundred = decimal.NewFromInt(100)

// FeeQuote is the informational provider fee for one amount. It is shown to
// the customer at checkout; the order total never includes it.
type FeeQuote struct {
	Percentage decimal.Decimal `json:"percentage"`
	Fixed      decimal.Decimal `json:"fixed"`
	AmountDue  decimal.Decimal `json:"amountDue"`
}

// Fee computes amount + amount*percentage/100 + fixed, rounded to currency
// precision. Pure; never fails.
func Fee(fees catalog.Fees, amount decimal.Decimal) FeeQuote {
	due := amount.
		Add(amount.Mul(fees.Percentage).Div(hundred)).
		Add(fees.Fixed).
		Round(2)

	return FeeQuote{
		Percentage: fees.Percentage,
		Fixed:      fees.Fixed,
		AmountDue:  due,
	}
}
