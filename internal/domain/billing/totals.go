package billing

import (
	"github.com/shopspring/decimal"

	"github.com/amgrenovation/ops-dashboard/internal/models"
)

// VATRate is the only rate the business invoices at.
var VATRate = decimal.NewFromInt(20)

type Totals struct {
	HT  decimal.Decimal
	TVA decimal.Decimal
	TTC decimal.Decimal
}

// ComputeTotals sums quantity × unit price and applies VATRate, rounding each
// amount to the cent.
func ComputeTotals(items []models.LineItem) Totals {
	ht := decimal.Zero
	for _, it := range items {
		ht = ht.Add(decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.UnitPrice)))
	}
	ht = ht.Round(2)
	tva := ht.Mul(VATRate).Div(decimal.NewFromInt(100)).Round(2)
	return Totals{HT: ht, TVA: tva, TTC: ht.Add(tva)}
}

// Float returns the amounts as stored in the numeric columns.
func (t Totals) Float() (ht, tva, ttc float64) {
	return t.HT.InexactFloat64(), t.TVA.InexactFloat64(), t.TTC.InexactFloat64()
}

// Rate returns VATRate as stored on documents.
func Rate() float64 {
	return VATRate.InexactFloat64()
}
