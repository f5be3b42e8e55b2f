package installments

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Draft describes one installment produced by expanding a card purchase.
// Amounts are rounded to 2 decimal places independently per draft, so the
// drafts may not sum exactly to the original total (penny drift is accepted).
type Draft struct {
	Amount     decimal.Decimal
	BaseAmount decimal.Decimal
	Date       time.Time
	Notes      string
	Index      int
	Count      int
}

// Expand splits a total amount into count monthly installments starting at
// start. Each draft gets total/count rounded to 2 decimals, a date advanced by
// i calendar months, and the original notes suffixed with the installment
// position. When count is 1 the notes are returned untouched.
func Expand(total, baseTotal decimal.Decimal, count int, start time.Time, notes string) ([]Draft, error) {
	if count < 1 {
		return nil, fmt.Errorf("installment count must be at least 1, got %d", count)
	}

	countDec := decimal.NewFromInt(int64(count))
	perAmount := total.Div(countDec).Round(2)
	perBase := baseTotal.Div(countDec).Round(2)

	drafts := make([]Draft, 0, count)
	for i := 0; i < count; i++ {
		draftNotes := notes
		if count > 1 {
			draftNotes = fmt.Sprintf("%s (Cuota %d/%d)", notes, i+1, count)
		}
		drafts = append(drafts, Draft{
			Amount:     perAmount,
			BaseAmount: perBase,
			Date:       start.AddDate(0, i, 0),
			Notes:      draftNotes,
			Index:      i + 1,
			Count:      count,
		})
	}
	return drafts, nil
}
