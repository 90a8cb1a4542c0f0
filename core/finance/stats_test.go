package finance

import (
	"testing"
	"time"
)

func TestCalcStats(t *testing.T) {
	now := time.Date(2021, time.March, 15, 10, 0, 0, 0, time.UTC)
	lastMonth := now.AddDate(0, -1, 0)
	lastYear := now.AddDate(-1, 0, 0)

	payments := []Payment{
		{ID: "1", Status: StatusPaid, Amount: 50000, Date: now},
		{ID: "2", Status: StatusPaid, Amount: 25000, Date: now.AddDate(0, 0, -3)},
		{ID: "3", Status: StatusPaid, Amount: 10000, Date: lastMonth},
		{ID: "4", Status: StatusPaid, Amount: 10000, Date: lastYear}, // same month, other year
		{ID: "5", Status: StatusPending, Amount: 99999, Date: now},
		{ID: "6", Status: StatusOverdue, Amount: 15000, Date: lastMonth},
		{ID: "7", Status: StatusOverdue, Amount: 5000, Date: lastYear},
	}

	stats := CalcStats(payments, now)

	if want := 75000.0; stats.MonthlyIncome != want {
		t.Errorf("MonthlyIncome = %v, want %v", stats.MonthlyIncome, want)
	}
	if stats.MonthlyExpenses != 0 {
		t.Errorf("MonthlyExpenses = %v, want 0", stats.MonthlyExpenses)
	}
	if want := 75000.0; stats.NetProfit != want {
		t.Errorf("NetProfit = %v, want %v", stats.NetProfit, want)
	}
	// overdue figures ignore the date window
	if stats.OverdueCount != 2 {
		t.Errorf("OverdueCount = %v, want 2", stats.OverdueCount)
	}
	if want := 20000.0; stats.OverdueAmount != want {
		t.Errorf("OverdueAmount = %v, want %v", stats.OverdueAmount, want)
	}
}

func TestCalcStatsDeterministic(t *testing.T) {
	now := time.Now()
	payments := []Payment{
		{Status: StatusPaid, Amount: 100, Date: now},
		{Status: StatusOverdue, Amount: 40, Date: now},
	}
	if CalcStats(payments, now) != CalcStats(payments, now) {
		t.Error("CalcStats() should be deterministic for the same input")
	}
}

func TestCalcStatsEmpty(t *testing.T) {
	stats := CalcStats(nil, time.Now())
	if stats != (Stats{}) {
		t.Errorf("CalcStats(nil) = %+v, want zero Stats", stats)
	}
}

func TestOverdueAndByType(t *testing.T) {
	now := time.Now()
	payments := []Payment{
		{ID: "1", Status: StatusPaid, Type: "Scolarité", Date: now},
		{ID: "2", Status: StatusOverdue, Type: "Scolarité", Date: now},
		{ID: "3", Status: StatusOverdue, Type: "Cantine", Date: now},
	}

	if got := Overdue(payments); len(got) != 2 {
		t.Errorf("Overdue() = %d payments, want 2", len(got))
	}
	if got := ByType(payments, "Scolarité"); len(got) != 2 {
		t.Errorf("ByType(Scolarité) = %d payments, want 2", len(got))
	}
	if got := ByType(payments, "Transport"); len(got) != 0 {
		t.Errorf("ByType(Transport) = %d payments, want 0", len(got))
	}
}
