package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BillStatus is the payment status of a bill.
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// BillStatuses returns all valid bill statuses.
func BillStatuses() []BillStatus {
	return []BillStatus{BillStatusPending, BillStatusPaid}
}

// RecurringInterval is the recurrence of a recurring bill.
type RecurringInterval string

const (
	IntervalWeekly  RecurringInterval = "weekly"
	IntervalMonthly RecurringInterval = "monthly"
	IntervalYearly  RecurringInterval = "yearly"
	IntervalNone    RecurringInterval = "none"
)

// RecurringIntervals returns all valid recurring intervals.
func RecurringIntervals() []RecurringInterval {
	return []RecurringInterval{IntervalWeekly, IntervalMonthly, IntervalYearly, IntervalNone}
}

// Bill represents a payable obligation with a due date.
//
// The notification tracking fields record which emails have already
// been dispatched for the bill:
//
//   - EmailSent latches once the creation confirmation went out.
//   - ReminderEmailSent latches once the upcoming-due reminder went out,
//     it transitions false to true exactly once per bill.
//   - LastEmailSent holds the time of the most recent notification sent
//     on the creation and reminder paths.
//
// Overdue notifications are not latched and resend on every scheduler
// pass while the bill stays pending and overdue.
type Bill struct {
	DefaultModel
	UserID uuid.UUID       `json:"userId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Status BillStatus      `json:"status" gorm:"default:pending"`

	DueDate time.Time `json:"dueDate"`

	IsRecurring       bool              `json:"isRecurring" gorm:"default:false"`
	RecurringInterval RecurringInterval `json:"recurringInterval" gorm:"default:none"`

	EmailSent         bool       `json:"emailSent" gorm:"default:false"`
	LastEmailSent     *time.Time `json:"lastEmailSent"`
	ReminderEmailSent bool       `json:"reminderEmailSent" gorm:"default:false"`
}

// BeforeSave validates the enumerated fields and normalizes the due date.
func (b *Bill) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)

	if b.Status == "" {
		b.Status = BillStatusPending
	}
	if !slices.Contains(BillStatuses(), b.Status) {
		return ErrBillStatusInvalid
	}

	if b.RecurringInterval == "" {
		b.RecurringInterval = IntervalNone
	}
	if !slices.Contains(RecurringIntervals(), b.RecurringInterval) {
		return ErrRecurringIntervalInvalid
	}

	if b.Amount.IsNegative() {
		return ErrAmountNegative
	}

	b.DueDate = b.DueDate.In(time.UTC)

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, not +0000.
func (b *Bill) AfterFind(tx *gorm.DB) error {
	err := b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	b.DueDate = b.DueDate.In(time.UTC)
	if b.LastEmailSent != nil {
		utc := b.LastEmailSent.In(time.UTC)
		b.LastEmailSent = &utc
	}

	return nil
}
