package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rentbook/rentbook/internal/models"
	"github.com/rentbook/rentbook/internal/state"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrInvalidInput marks a request rejected by local validation before any
// upstream call is made.
var ErrInvalidInput = errors.New("invalid input")

// ProfileStore is the full surface of the remote profile store.
type ProfileStore interface {
	ProfileGetter
	ListProfiles(ctx context.Context) ([]models.RentProfile, error)
	CreateProfile(ctx context.Context, p models.NewProfile) (*models.RentProfile, error)
	UpdateProfile(ctx context.Context, profileID string, p models.ProfileUpdate) (*models.RentProfile, error)
}

// TransactionStore is the full surface of the remote transaction store.
type TransactionStore interface {
	TransactionLister
	ListTransactions(ctx context.Context, profileID string, start, end time.Time, page, limit int) (*models.TransactionPage, error)
	CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error)
}

// Service handles profile and transaction operations on behalf of the UI.
// It validates payloads locally, forwards them to the remote stores and
// keeps the cached balance honest.
type Service struct {
	profiles     ProfileStore
	transactions TransactionStore
	appState     *state.Store
	log          *logrus.Logger
}

// NewService initializes a new service
func NewService(profiles ProfileStore, transactions TransactionStore, appState *state.Store, log *logrus.Logger) *Service {
	return &Service{
		profiles:     profiles,
		transactions: transactions,
		appState:     appState,
		log:          log,
	}
}

// ListProfiles returns every profile in the profile store.
func (s *Service) ListProfiles(ctx context.Context) ([]models.RentProfile, error) {
	return s.profiles.ListProfiles(ctx)
}

// GetProfile returns one profile by id.
func (s *Service) GetProfile(ctx context.Context, profileID string) (*models.RentProfile, error) {
	return s.profiles.GetProfile(ctx, profileID)
}

// CreateProfile validates and creates a new profile.
func (s *Service) CreateProfile(ctx context.Context, p models.NewProfile) (*models.RentProfile, error) {
	if err := validateProfileFields(p.Name, p.EntityType, p.RentAmount, p.FinePerDay); err != nil {
		return nil, err
	}

	profile, err := s.profiles.CreateProfile(ctx, p)
	if err != nil {
		return nil, err
	}

	s.log.Infof("Profile created: %s (%s)", profile.Name, profile.EntityType)
	return profile, nil
}

// UpdateProfile validates and updates a profile's rent and fine settings.
func (s *Service) UpdateProfile(ctx context.Context, profileID string, p models.ProfileUpdate) (*models.RentProfile, error) {
	if err := validateProfileFields(p.Name, p.EntityType, p.RentAmount, p.FinePerDay); err != nil {
		return nil, err
	}

	profile, err := s.profiles.UpdateProfile(ctx, profileID, p)
	if err != nil {
		return nil, err
	}

	// Rent or fine terms may have changed; the cached balance no longer
	// reflects them.
	if activeID, _ := s.appState.ActiveProfile(); activeID == profileID {
		if err := s.appState.InvalidateBalance(); err != nil {
			s.log.WithError(err).Error("Failed to invalidate cached balance")
		}
	}
	return profile, nil
}

// ListTransactions returns one page of a profile's transaction history.
func (s *Service) ListTransactions(ctx context.Context, profileID string, page, limit int) (*models.TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.transactions.ListTransactions(ctx, profileID, time.Time{}, time.Time{}, page, limit)
}

// CreateTransaction validates and records a payment, then invalidates the
// cached balance so the next read recomputes.
func (s *Service) CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error) {
	if tx.ProfileID == "" {
		return nil, fmt.Errorf("%w: profileId is required", ErrInvalidInput)
	}
	if tx.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be at least 0", ErrInvalidInput)
	}
	if tx.PaymentType != models.PaymentCash && tx.PaymentType != models.PaymentOnline {
		return nil, fmt.Errorf("%w: payment type must be cash or online", ErrInvalidInput)
	}
	if len(tx.Note) < 1 || len(tx.Note) > 60 {
		return nil, fmt.Errorf("%w: note must be 1 to 60 characters", ErrInvalidInput)
	}

	created, err := s.transactions.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	if activeID, _ := s.appState.ActiveProfile(); activeID == tx.ProfileID {
		if err := s.appState.InvalidateBalance(); err != nil {
			s.log.WithError(err).Error("Failed to invalidate cached balance")
		}
	}

	s.log.Infof("Payment of %s recorded for profile %s (%s)", tx.Amount.String(), tx.ProfileID, tx.PaymentType)
	return created, nil
}

func validateProfileFields(name, entityType string, rentAmount, finePerDay decimal.Decimal) error {
	if len(name) < 3 || len(name) > 18 {
		return fmt.Errorf("%w: name must be 3 to 18 characters", ErrInvalidInput)
	}
	if entityType != models.EntityIndividual && entityType != models.EntityHotel {
		return fmt.Errorf("%w: entity type must be individual or hotel", ErrInvalidInput)
	}
	if rentAmount.IsNegative() {
		return fmt.Errorf("%w: rent amount must be positive", ErrInvalidInput)
	}
	if finePerDay.IsNegative() {
		return fmt.Errorf("%w: fine per day must be positive", ErrInvalidInput)
	}
	return nil
}
