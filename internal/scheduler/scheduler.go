// Package scheduler implements the periodic bill reminder job.
//
// The scheduler scans all pending bills, classifies each one as upcoming
// or overdue and dispatches the matching notification email. Reminder
// notifications latch per bill, overdue notifications resend on every
// scan while the bill stays pending and overdue.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/financegenie/backend/internal/email"
	"github.com/financegenie/backend/internal/models"
	"github.com/financegenie/backend/internal/types"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// DefaultInterval is the time between two scans.
	DefaultInterval = 24 * time.Hour

	// ReminderDaysBefore is the number of days before the due date from
	// which on the upcoming-due reminder is sent.
	ReminderDaysBefore = 3
)

// EmailSender dispatches the notification emails the scheduler triggers.
type EmailSender interface {
	SendBillReminder(to string, data email.BillData) bool
	SendBillOverdue(to string, data email.BillData) bool
}

// Scheduler owns the periodic bill notification job.
//
// A Scheduler is constructed once and injected where it is needed, it
// holds its own timer and cancellation handle. Only one job runs per
// Scheduler: calling Start while the job is active is a no-op.
type Scheduler struct {
	db           *gorm.DB
	email        EmailSender
	interval     time.Duration
	reminderDays int

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the time between two scans.
func WithInterval(interval time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = interval
	}
}

// WithReminderDays sets the size of the reminder window in days.
func WithReminderDays(days int) Option {
	return func(s *Scheduler) {
		s.reminderDays = days
	}
}

// New returns a Scheduler scanning the given database and sending
// through the given sender.
func New(db *gorm.DB, sender EmailSender, options ...Option) *Scheduler {
	s := &Scheduler{
		db:           db,
		email:        sender,
		interval:     DefaultInterval,
		reminderDays: ReminderDaysBefore,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Start runs one scan immediately and then one scan per interval until
// Stop is called. Starting an already started Scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		log.Warn().Msg("bill scheduler already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.run(ctx)

	log.Info().
		Dur("interval", s.interval).
		Int("reminderDays", s.reminderDays).
		Msg("bill scheduler started")
}

// Stop cancels all future scans. An in-flight scan is not interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}

	s.cancel()
	s.cancel = nil

	log.Info().Msg("bill scheduler stopped")
}

// Running reports whether the periodic job is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

func (s *Scheduler) run(ctx context.Context) {
	s.RunScan(time.Now())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunScan(time.Now())
		}
	}
}

// RunScan scans all pending bills once and dispatches the notifications
// due at the given point in time.
//
// Errors on a single bill never abort the scan of the remaining bills,
// and a failing scan leaves the scheduler armed for the next interval.
func (s *Scheduler) RunScan(now time.Time) {
	scansTotal.Inc()

	today := types.DayOf(now)
	log.Debug().Stringer("day", today).Msg("checking bills for reminders and overdue notifications")

	bills, err := s.pendingBills(today)
	if err != nil {
		scanErrorsTotal.Inc()
		log.Error().Err(err).Msg("error fetching bills for notification scan")
		return
	}

	log.Debug().Int("count", len(bills)).Msg("found bills requiring attention")

	for _, bill := range bills {
		err := s.processBill(bill, today)
		if err != nil {
			scanErrorsTotal.Inc()
			log.Error().Err(err).Stringer("bill", bill.ID).Msg("error processing bill")
		}
	}
}

// pendingBills returns all pending bills that are due within the
// reminder window and not yet reminded, or that are already overdue.
//
// "today" is fixed once per scan so that all comparisons within the scan
// are calendar-day granular.
func (s *Scheduler) pendingBills(today types.Day) ([]models.Bill, error) {
	windowEnd := today.AddDays(s.reminderDays)

	var bills []models.Bill
	err := s.db.
		Where("status = ?", models.BillStatusPending).
		Where(
			s.db.
				Where("due_date >= ? AND due_date <= ? AND reminder_email_sent = ?", today.Time(), windowEnd.Time(), false).
				Or("due_date < ?", today.Time()),
		).
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// processBill classifies a single bill and dispatches its notification.
func (s *Scheduler) processBill(bill models.Bill, today types.Day) error {
	var user models.User
	err := s.db.First(&user, "id = ?", bill.UserID).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		// The owning user is gone, nobody to notify.
		log.Debug().Stringer("bill", bill.ID).Msg("skipping bill without owner")
		return nil
	}
	if err != nil {
		// A failing lookup is not a missing owner. Reported upwards so
		// the scan error is logged and counted.
		return fmt.Errorf("loading user for bill: %w", err)
	}

	if user.Email == "" || !user.EmailNotifications {
		return nil
	}

	due := types.DayOf(bill.DueDate)

	data := email.BillData{
		Name:              bill.Name,
		Amount:            bill.Amount,
		DueDate:           bill.DueDate,
		Status:            bill.Status,
		IsRecurring:       bill.IsRecurring,
		RecurringInterval: bill.RecurringInterval,
	}

	// Overdue bills are notified on every scan. The original reminder
	// latch is untouched and LastEmailSent is only written on the
	// creation and reminder paths.
	if due.Before(today) {
		data.DaysOverdue = due.DaysUntil(today)

		log.Info().Stringer("bill", bill.ID).Int("daysOverdue", data.DaysOverdue).Msg("sending overdue email")
		if s.email.SendBillOverdue(user.Email, data) {
			emailsSentTotal.WithLabelValues("overdue").Inc()
		}

		return nil
	}

	// The selection query only returns non-overdue bills when the
	// reminder has not been sent yet. The latch transitions false to
	// true exactly once per bill.
	if bill.ReminderEmailSent {
		return nil
	}

	data.DaysUntilDue = today.DaysUntil(due)

	log.Info().Stringer("bill", bill.ID).Int("daysUntilDue", data.DaysUntilDue).Msg("sending reminder email")
	if !s.email.SendBillReminder(user.Email, data) {
		// Not latched, the reminder is retried on the next scan.
		return nil
	}

	emailsSentTotal.WithLabelValues("reminder").Inc()

	now := time.Now().In(time.UTC)
	err = s.db.Model(&bill).
		Select("ReminderEmailSent", "LastEmailSent").
		Updates(models.Bill{ReminderEmailSent: true, LastEmailSent: &now}).Error
	if err != nil {
		return err
	}

	return nil
}
