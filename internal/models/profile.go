package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entity types accepted by the profile store.
const (
	EntityIndividual = "individual"
	EntityHotel      = "hotel"
)

// RentProfile represents a tenant or hotel with a recurring rent obligation.
// Profiles are owned by the remote profile store; this service only reads
// and forwards them.
type RentProfile struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	EntityType string          `json:"entityType"`
	RentAmount decimal.Decimal `json:"rentAmount"`
	FinePerDay decimal.Decimal `json:"finePerDay"`
	FineActive bool            `json:"fineActive"`
	// Fine window bounds, both inclusive. If FineActive is set but either
	// bound is missing, no fine accrues.
	FineStartDate *time.Time `json:"fineStartDate,omitempty"`
	FineEndDate   *time.Time `json:"fineEndDate,omitempty"`
	Note          string     `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewProfile is the payload for creating a profile.
type NewProfile struct {
	Name          string          `json:"name"`
	EntityType    string          `json:"entityType"`
	RentAmount    decimal.Decimal `json:"rentAmount"`
	FinePerDay    decimal.Decimal `json:"finePerDay"`
	FineActive    bool            `json:"fineActive"`
	FineStartDate *time.Time      `json:"fineStartDate,omitempty"`
	FineEndDate   *time.Time      `json:"fineEndDate,omitempty"`
	Note          string          `json:"note,omitempty"`
}

// ProfileUpdate is the payload for updating a profile's rent and fine settings.
type ProfileUpdate struct {
	Name          string          `json:"name"`
	EntityType    string          `json:"entityType"`
	RentAmount    decimal.Decimal `json:"rentAmount"`
	FinePerDay    decimal.Decimal `json:"finePerDay"`
	FineActive    bool            `json:"fineActive"`
	FineStartDate *time.Time      `json:"fineStartDate,omitempty"`
	FineEndDate   *time.Time      `json:"fineEndDate,omitempty"`
}
