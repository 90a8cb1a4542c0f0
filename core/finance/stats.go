package finance

import "time"

// Stats are the derived financial figures shown on the finances dashboard.
type Stats struct {
	MonthlyIncome float64 `json:"monthly_income"`
	// MonthlyExpenses is always 0: no expense entity exists in the model.
	MonthlyExpenses float64 `json:"monthly_expenses"`
	NetProfit       float64 `json:"net_profit"`
	OverdueCount    int     `json:"overdue_count"`
	OverdueAmount   float64 `json:"overdue_amount"`
}

// CalcStats computes Stats from a payment snapshot. Pure: re-running with the
// same (payments, now) yields identical output, and the input is never
// mutated.
//
// MonthlyIncome sums paid payments whose own date (not creation time) falls
// in the same calendar month and year as `now`. Overdue figures cover every
// overdue payment regardless of date.
func CalcStats(payments []Payment, now time.Time) Stats {
	var stats Stats
	for _, p := range payments {
		switch p.Status {
		case StatusPaid:
			if p.Date.Month() == now.Month() && p.Date.Year() == now.Year() {
				stats.MonthlyIncome += p.Amount
			}
		case StatusOverdue:
			stats.OverdueCount++
			stats.OverdueAmount += p.Amount
		}
	}
	stats.NetProfit = stats.MonthlyIncome - stats.MonthlyExpenses
	return stats
}

// Overdue returns the overdue payments in the snapshot.
func Overdue(payments []Payment) []Payment {
	overdue := make([]Payment, 0)
	for _, p := range payments {
		if p.Status == StatusOverdue {
			overdue = append(overdue, p)
		}
	}
	return overdue
}

// ByType returns the payments recorded under the given payment-type name
// (exact match).
func ByType(payments []Payment, typeName string) []Payment {
	filtered := make([]Payment, 0)
	for _, p := range payments {
		if p.Type == typeName {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
