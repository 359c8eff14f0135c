package domain

import "github.com/shopspring/decimal"

// Totals is the invoice-level fold over a draft's line items.
//
// Line totals are always tax-inclusive. Subtotal sums the pre-VAT component
// of each line, Tax sums the per-line VAT amounts (zero for flights), and
// Total sums the line totals, so Total == Subtotal + Tax by construction and
// VAT is never counted twice.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Add combines two folds. Aggregation is a plain sum, so splitting a list at
// any point and adding the partial totals gives the same result.
func (t Totals) Add(other Totals) Totals {
	return Totals{
		Subtotal: t.Subtotal.Add(other.Subtotal),
		Tax:      t.Tax.Add(other.Tax),
		Total:    t.Total.Add(other.Total),
	}
}

// Round returns the totals rounded to currency precision for presentation.
func (t Totals) Round() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Tax:      t.Tax.Round(2),
		Total:    t.Total.Round(2),
	}
}

// Aggregate folds an ordered list of line items into invoice totals. The
// empty list yields all zeros. Every item must match the kind implied by the
// invoice type; a mismatched item aborts the fold rather than being coerced
// or skipped.
func Aggregate(items []LineItem, invoiceType InvoiceType) (Totals, error) {
	wantKind, ok := invoiceType.ItemKind()
	if !ok {
		return Totals{}, ErrInvalidInvoiceType
	}

	totals := Totals{
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
	for _, item := range items {
		if item.Kind != wantKind {
			return Totals{}, ErrItemKindMismatch
		}
		lineTotal := item.Total()
		vat := item.VATAmount()
		totals.Subtotal = totals.Subtotal.Add(lineTotal.Sub(vat))
		totals.Tax = totals.Tax.Add(vat)
		totals.Total = totals.Total.Add(lineTotal)
	}
	return totals, nil
}

// RecalculateAndAggregate recomputes every line before folding, so totals
// always reflect current inputs and never a stale derived field.
func RecalculateAndAggregate(items []LineItem, invoiceType InvoiceType) ([]LineItem, Totals, error) {
	recalced := make([]LineItem, 0, len(items))
	for _, item := range items {
		fresh, err := Recalculate(item)
		if err != nil {
			return nil, Totals{}, err
		}
		recalced = append(recalced, fresh)
	}
	totals, err := Aggregate(recalced, invoiceType)
	if err != nil {
		return nil, Totals{}, err
	}
	return recalced, totals, nil
}
