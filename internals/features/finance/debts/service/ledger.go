package service

import "math"

// Payment progress statuses, keyed off the paid percentage.
const (
	StatusPaid       = "paid"
	StatusNearlyPaid = "nearly_paid"
	StatusInProgress = "in_progress"
	StatusStarted    = "started"
	StatusNotStarted = "not_started"
)

// LedgerLine is the computed view of one debt row.
type LedgerLine struct {
	Owed       float64 `json:"owed"`
	Paid       float64 `json:"paid"`
	Remaining  float64 `json:"remaining"`
	Percentage int     `json:"percentage"`
	Status     string  `json:"status"`
	Surplus    bool    `json:"surplus"`
}

// LedgerTotals aggregates a set of lines.
type LedgerTotals struct {
	TotalOwed      float64 `json:"total_owed"`
	TotalPaid      float64 `json:"total_paid"`
	TotalRemaining float64 `json:"total_remaining"`
	Percentage     int     `json:"percentage"`
}

// Remaining never goes negative; overpayment is reported through the
// surplus flag instead.
func Remaining(owed, paid float64) float64 {
	r := owed - paid
	if r < 0 {
		return 0
	}
	return r
}

// Percentage is paid over owed as a percent. The denominator is
// floored at one so a zero-amount debt never divides by zero.
func Percentage(owed, paid float64) float64 {
	denom := owed
	if denom <= 0 {
		denom = 1
	}
	return 100 * paid / denom
}

// StatusOf maps a paid percentage onto the progress scale. It takes
// the exact ratio, not a rounded one: a debt at 99.5% is still
// nearly_paid, rounding only moves the number shown to the client.
func StatusOf(percentage float64) string {
	switch {
	case percentage >= 100:
		return StatusPaid
	case percentage >= 75:
		return StatusNearlyPaid
	case percentage >= 50:
		return StatusInProgress
	case percentage > 0:
		return StatusStarted
	default:
		return StatusNotStarted
	}
}

// Compute builds the full view of one debt.
func Compute(owed, paid float64) LedgerLine {
	pct := Percentage(owed, paid)
	return LedgerLine{
		Owed:       owed,
		Paid:       paid,
		Remaining:  Remaining(owed, paid),
		Percentage: int(math.Round(pct)),
		Status:     StatusOf(pct),
		Surplus:    paid > owed,
	}
}

// Summarize totals a set of lines; the percentage is over the summed
// amounts, not an average of per-line percentages.
func Summarize(lines []LedgerLine) LedgerTotals {
	var t LedgerTotals
	for _, l := range lines {
		t.TotalOwed += l.Owed
		t.TotalPaid += l.Paid
		t.TotalRemaining += l.Remaining
	}
	t.Percentage = int(math.Round(Percentage(t.TotalOwed, t.TotalPaid)))
	return t
}

// ApplyPayment returns the new paid amount after crediting a payment.
// Amounts never go down through this path.
func ApplyPayment(paid, amount float64) float64 {
	if amount <= 0 {
		return paid
	}
	return paid + amount
}
