package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/rentbook/rentbook/internal/config"
	"github.com/rentbook/rentbook/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender handles sending rent reminder emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether SMTP settings and a recipient are configured.
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != "" && s.cfg.SenderEmail != "" && s.cfg.ReminderEmail != ""
}

// SendRentReminder sends the current month's position for a profile whose
// rent is not fully paid.
func (s *Sender) SendRentReminder(profileName string, summary *models.BalanceSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.ReminderEmail}
	if summary.FineAmount.IsPositive() {
		e.Subject = fmt.Sprintf("Rent overdue for %s: fine accruing", profileName)
	} else {
		e.Subject = fmt.Sprintf("Rent due for %s", profileName)
	}

	// Format email body
	body := fmt.Sprintf(
		"Rent summary for %s (%s %d):\n\n", profileName, summary.Month, summary.Year,
	)
	body += fmt.Sprintf(
		"Rent amount: %s\nPaid so far: %s\nStill due: %s\n",
		summary.RentAmount.String(), summary.TotalPaid.String(), summary.Due.String(),
	)
	if summary.FineAmount.IsPositive() {
		body += fmt.Sprintf(
			"A late fine of %s has accrued. Total outstanding: %s.\n",
			summary.FineAmount.String(), summary.TotalDue.String(),
		)
	}
	if summary.DaysOverdue > 0 {
		body += fmt.Sprintf("The rent is %d day(s) past the due date.\n", summary.DaysOverdue)
	}
	body += "\nBest regards,\nRentBook"
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send reminder for %s: %v", profileName, err)
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.ReminderEmail, e.Subject)
	return nil
}
