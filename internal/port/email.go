package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// VATReminderPeriod is one overdue or upcoming VAT return.
type VATReminderPeriod struct {
	Year       int
	Month      int
	NetPayable decimal.Decimal
	DueDate    time.Time
}

// VATReminder is the content of a filing reminder for one user.
type VATReminder struct {
	ToEmail string
	ToName  string
	Periods []VATReminderPeriod
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendVATFilingReminder(ctx context.Context, reminder VATReminder) error
}
