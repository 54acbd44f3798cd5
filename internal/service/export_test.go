package service

import (
	"time"

	"naijatax/internal/port"
)

// NewVATServiceAt builds a VATService whose clock is fixed by now.
func NewVATServiceAt(vat port.VATRepository, profiles port.ProfileRepository, tables port.RateTableProvider, email port.EmailSender, now func() time.Time) VATService {
	return newVATService(vat, profiles, tables, email, now)
}

// SetClock replaces the worker's clock.
func (w *ReminderWorker) SetClock(now func() time.Time) {
	w.now = now
}

// SetReportClock replaces a report service's clock.
func SetReportClock(s ReportService, now func() time.Time) {
	s.(*reportService).now = now
}
