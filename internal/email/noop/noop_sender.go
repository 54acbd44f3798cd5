package noop

import (
	"context"
	"log"

	"naijatax/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op EmailSender that logs reminders to stdout.
func NewNoopSender(frontendURL string) port.EmailSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendVATFilingReminder(_ context.Context, reminder port.VATReminder) error {
	for _, p := range reminder.Periods {
		log.Printf("[NOOP EMAIL] VAT reminder for %s (%s): %d-%02d net %s due %s (%s/vat)",
			reminder.ToName, reminder.ToEmail, p.Year, p.Month,
			p.NetPayable.StringFixed(2), p.DueDate.Format("2006-01-02"), s.frontendURL)
	}
	return nil
}
