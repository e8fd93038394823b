package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rentbook/rentbook/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ProfileGetter reads a single profile from the profile store.
type ProfileGetter interface {
	GetProfile(ctx context.Context, profileID string) (*models.RentProfile, error)
}

// TransactionLister reads a profile's transactions inside a window from the
// transaction store.
type TransactionLister interface {
	ListAllTransactions(ctx context.Context, profileID string, start, end time.Time) ([]models.Transaction, error)
}

// BalanceService derives monthly balance summaries from a profile's rent
// terms and its recorded payments.
type BalanceService struct {
	profiles     ProfileGetter
	transactions TransactionLister
	rentDueDay   int
	log          *logrus.Logger
	now          func() time.Time
}

// NewBalanceService initializes a new balance service
func NewBalanceService(profiles ProfileGetter, transactions TransactionLister, rentDueDay int, log *logrus.Logger) *BalanceService {
	return &BalanceService{
		profiles:     profiles,
		transactions: transactions,
		rentDueDay:   rentDueDay,
		log:          log,
		now:          time.Now,
	}
}

// dayStart truncates t to midnight of its calendar day. All day arithmetic
// below compares timestamps through dayStart, so time of day never affects
// a day count.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days from a to b, both taken at midnight.
// Negative when b is before a.
func daysBetween(a, b time.Time) int {
	return int(dayStart(b).Sub(dayStart(a)) / (24 * time.Hour))
}

// daysOverdue reports how many whole calendar days now is past dueDate.
// Never negative; zero on or before the due date.
func daysOverdue(dueDate, now time.Time) int {
	d := daysBetween(dueDate, now)
	if d < 0 {
		return 0
	}
	return d
}

// fineAmount computes the late fine owed under the profile's fine window.
//
// Accrual is day-granular and inclusive of the window's start day: a window
// whose start, end and "now" all fall on the same day yields exactly one day
// of fine. Accrual caps at FineEndDate even if the balance stays unpaid
// afterwards, and nothing accrues against a fully paid balance.
//
// rentDueDate is accepted for symmetry with the overdue calculation but does
// not participate in the day count: only the configured window drives
// accrual. Tracked behavior, pinned by TestFineIgnoresRentDueDate.
func fineAmount(p *models.RentProfile, rentDueDate time.Time, hasUnpaid bool, now time.Time) decimal.Decimal {
	_ = rentDueDate

	if !p.FineActive || !hasUnpaid || !p.FinePerDay.IsPositive() {
		return decimal.Zero
	}
	if p.FineStartDate == nil || p.FineEndDate == nil {
		return decimal.Zero
	}

	today := dayStart(now)
	start := dayStart(*p.FineStartDate)
	end := dayStart(*p.FineEndDate)

	if today.Before(start) {
		return decimal.Zero
	}

	effectiveEnd := today
	if end.Before(today) {
		effectiveEnd = end
	}

	// +1 counts the start day itself.
	days := daysBetween(start, effectiveEnd) + 1
	if days < 0 {
		days = 0
	}
	return p.FinePerDay.Mul(decimal.NewFromInt(int64(days)))
}

// ComputeMonthlyBalance computes the summary for the current calendar month.
func (s *BalanceService) ComputeMonthlyBalance(ctx context.Context, profileID string) (*models.BalanceSummary, error) {
	now := s.now()
	return s.ComputeBalanceForMonth(ctx, profileID, now.Month(), now.Year())
}

// ComputeBalanceForMonth computes the summary for a specific calendar month.
// The profile and transaction reads are independent and issued concurrently;
// any failure aborts the whole computation, no partial summary is returned.
func (s *BalanceService) ComputeBalanceForMonth(ctx context.Context, profileID string, month time.Month, year int) (*models.BalanceSummary, error) {
	now := s.now()

	// Month window: first of the month inclusive to first of the next
	// month exclusive.
	start := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	var (
		wg      sync.WaitGroup
		profile *models.RentProfile
		txns    []models.Transaction
		pErr    error
		tErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, pErr = s.profiles.GetProfile(ctx, profileID)
	}()
	go func() {
		defer wg.Done()
		txns, tErr = s.transactions.ListAllTransactions(ctx, profileID, start, end)
	}()
	wg.Wait()

	if pErr != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", pErr)
	}
	if tErr != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", tErr)
	}

	// Re-check the window locally rather than trusting the store's filter.
	totalPaid := decimal.Zero
	for _, txn := range txns {
		if txn.CreatedAt.Before(start) || !txn.CreatedAt.Before(end) {
			s.log.WithFields(logrus.Fields{
				"transaction_id": txn.ID,
				"created_at":     txn.CreatedAt,
			}).Warn("Discarding transaction outside requested month window")
			continue
		}
		totalPaid = totalPaid.Add(txn.Amount)
	}

	remaining := profile.RentAmount.Sub(totalPaid)
	due := remaining
	if due.IsNegative() {
		due = decimal.Zero
	}

	rentDueDate := time.Date(year, month, s.rentDueDay, 0, 0, 0, 0, now.Location())
	overdue := daysOverdue(rentDueDate, now)
	hasUnpaid := due.IsPositive()
	fine := fineAmount(profile, rentDueDate, hasUnpaid, now)

	// Full payment always wins over an open fine window.
	status := models.StatusDue
	if totalPaid.GreaterThanOrEqual(profile.RentAmount) {
		status = models.StatusPaid
	} else if fine.IsPositive() {
		status = models.StatusFine
	}

	summary := &models.BalanceSummary{
		RentAmount:  profile.RentAmount,
		TotalPaid:   totalPaid,
		Remaining:   remaining,
		Due:         due,
		FineAmount:  fine,
		TotalDue:    due.Add(fine),
		DaysOverdue: overdue,
		Status:      status,
		Month:       month.String(),
		Year:        year,
	}

	s.log.WithFields(logrus.Fields{
		"profile_id": profileID,
		"month":      summary.Month,
		"year":       year,
		"status":     status,
	}).Debug("Computed monthly balance")
	return summary, nil
}
