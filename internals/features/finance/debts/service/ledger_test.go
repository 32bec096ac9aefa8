package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	assert.Equal(t, 100.0, Remaining(150, 50))
	assert.Equal(t, 0.0, Remaining(100, 100))
	assert.Equal(t, 0.0, Remaining(100, 150)) // overpayment clamps
	assert.Equal(t, 0.0, Remaining(0, 0))
}

func TestPercentage_ZeroOwedGuard(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 5000.0, Percentage(0, 50)) // denominator floored at 1
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, StatusNotStarted},
		{1, StatusStarted},
		{49, StatusStarted},
		{50, StatusInProgress},
		{74, StatusInProgress},
		{75, StatusNearlyPaid},
		{99, StatusNearlyPaid},
		{99.5, StatusNearlyPaid}, // would round up to 100, still unpaid
		{100, StatusPaid},
		{150, StatusPaid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.pct), "pct=%v", tt.pct)
	}
}

func TestCompute(t *testing.T) {
	t.Run("exactly settled", func(t *testing.T) {
		l := Compute(100, 100)
		assert.Equal(t, 0.0, l.Remaining)
		assert.Equal(t, 100, l.Percentage)
		assert.Equal(t, StatusPaid, l.Status)
		assert.False(t, l.Surplus)
	})

	t.Run("overpaid", func(t *testing.T) {
		l := Compute(100, 150)
		assert.Equal(t, 0.0, l.Remaining)
		assert.Equal(t, 150, l.Percentage)
		assert.Equal(t, StatusPaid, l.Status)
		assert.True(t, l.Surplus)
	})

	t.Run("nearly settled rounds up for display only", func(t *testing.T) {
		l := Compute(1000, 995)
		assert.Equal(t, 5.0, l.Remaining)
		assert.Equal(t, 100, l.Percentage) // display rounds up
		assert.Equal(t, StatusNearlyPaid, l.Status)
		assert.False(t, l.Surplus)
	})

	t.Run("halfway", func(t *testing.T) {
		l := Compute(200, 100)
		assert.Equal(t, 100.0, l.Remaining)
		assert.Equal(t, 50, l.Percentage)
		assert.Equal(t, StatusInProgress, l.Status)
	})

	t.Run("untouched", func(t *testing.T) {
		l := Compute(200, 0)
		assert.Equal(t, StatusNotStarted, l.Status)
	})
}

func TestSummarize(t *testing.T) {
	lines := []LedgerLine{
		Compute(100, 100),
		Compute(200, 50),
		Compute(300, 0),
	}
	totals := Summarize(lines)

	assert.Equal(t, 600.0, totals.TotalOwed)
	assert.Equal(t, 150.0, totals.TotalPaid)
	assert.Equal(t, 450.0, totals.TotalRemaining)
	assert.Equal(t, 25, totals.Percentage)
}

func TestApplyPayment(t *testing.T) {
	assert.Equal(t, 150.0, ApplyPayment(100, 50))
	assert.Equal(t, 100.0, ApplyPayment(100, 0))
	assert.Equal(t, 100.0, ApplyPayment(100, -20)) // never debits
}
