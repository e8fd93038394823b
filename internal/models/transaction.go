package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types recorded on a transaction. Informational only; balance math
// does not distinguish them.
const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

// Transaction represents a single rent payment recorded against a profile.
type Transaction struct {
	ID          string          `json:"id"`
	ProfileID   string          `json:"profileId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewTransaction is the payload for recording a payment.
type NewTransaction struct {
	ProfileID   string          `json:"profileId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType"`
	Note        string          `json:"note"`
	CreatedAt   *time.Time      `json:"created,omitempty"`
}

// Pagination describes the transaction store's paging envelope.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TransactionPage is one page of a profile's transaction history.
type TransactionPage struct {
	Items      []Transaction `json:"transactions"`
	Pagination Pagination    `json:"pagination"`
}
