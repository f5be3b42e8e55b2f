package installments

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandSingleInstallment(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(5000)

	drafts, err := Expand(total, total, 1, start, "Supermercado")
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.True(t, drafts[0].Amount.Equal(total), "single installment keeps the full amount")
	assert.Equal(t, start, drafts[0].Date)
	assert.Equal(t, "Supermercado", drafts[0].Notes, "notes should be untouched for a single installment")
	assert.Equal(t, 1, drafts[0].Index)
	assert.Equal(t, 1, drafts[0].Count)
}

func TestExpandThreeInstallments(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(9000)

	drafts, err := Expand(total, total, 3, start, "Notebook")
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	expectedDates := []time.Time{
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	for i, draft := range drafts {
		assert.True(t, draft.Amount.Equal(decimal.NewFromInt(3000)), "each installment should be 3000, got %s", draft.Amount)
		assert.Equal(t, expectedDates[i], draft.Date)
		assert.Equal(t, i+1, draft.Index)
		assert.Equal(t, 3, draft.Count)
	}

	assert.Equal(t, "Notebook (Cuota 1/3)", drafts[0].Notes)
	assert.Equal(t, "Notebook (Cuota 2/3)", drafts[1].Notes)
	assert.Equal(t, "Notebook (Cuota 3/3)", drafts[2].Notes)
}

func TestExpandRoundingDrift(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(100)

	drafts, err := Expand(total, total, 3, start, "Cafetera")
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	// 100/3 rounds to 33.33 per installment, summing to 99.99.
	// The drift is accepted rather than adjusted into the last installment.
	sum := decimal.Zero
	for _, draft := range drafts {
		assert.True(t, draft.Amount.Equal(decimal.RequireFromString("33.33")))
		sum = sum.Add(draft.Amount)
	}
	drift := total.Sub(sum).Abs()
	tolerance := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(3))
	assert.True(t, drift.LessThanOrEqual(tolerance), "drift %s should stay within N*0.01", drift)
}

func TestExpandMonthEndDates(t *testing.T) {
	// AddDate normalizes overflowing days, Jan 31 + 1 month lands in March.
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	drafts, err := Expand(decimal.NewFromInt(600), decimal.NewFromInt(600), 2, start, "Silla")
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), drafts[0].Date)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), drafts[1].Date)
}

func TestExpandInvalidCount(t *testing.T) {
	_, err := Expand(decimal.NewFromInt(100), decimal.NewFromInt(100), 0, time.Now(), "x")
	assert.Error(t, err)
}
