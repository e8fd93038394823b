package models

import "github.com/shopspring/decimal"

// Balance statuses derived for a profile's month.
const (
	StatusPaid = "paid"
	StatusDue  = "due"
	StatusFine = "fine"
)

// BalanceSummary is the computed view of a profile's month: what was paid,
// what is still due and how much fine has accrued. It is derived data,
// recomputed on demand; a cached copy is good for display only and goes
// stale as soon as a payment lands or the day rolls over.
type BalanceSummary struct {
	RentAmount  decimal.Decimal `json:"rentAmount"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Remaining   decimal.Decimal `json:"remaining"` // negative when overpaid
	Due         decimal.Decimal `json:"due"`
	FineAmount  decimal.Decimal `json:"fineAmount"`
	TotalDue    decimal.Decimal `json:"totalDue"` // due + fine
	DaysOverdue int             `json:"daysOverdue"`
	Status      string          `json:"status"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
}
