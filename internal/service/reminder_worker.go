package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"naijatax/internal/port"
)

// ReminderConfig holds settings for the VAT reminder worker.
type ReminderConfig struct {
	Interval    time.Duration
	Concurrency int

	// Zero re-sends on every run.
	ResendAfter time.Duration
}

type reminderKey struct {
	userID uuid.UUID
	year   int
}

// ReminderWorker periodically sends VAT filing reminders to every user with
// VAT activity in the current year. A user who was reminded is left alone for
// ResendAfter; the record lives in memory, so a restart may send once early.
type ReminderWorker struct {
	vatRepo    port.VATRepository
	vatService VATService
	cfg        ReminderConfig
	now        func() time.Time
	wg         sync.WaitGroup

	mu       sync.Mutex
	lastSent map[reminderKey]time.Time
}

// NewReminderWorker creates a new ReminderWorker.
func NewReminderWorker(vatRepo port.VATRepository, vatService VATService, cfg ReminderConfig) *ReminderWorker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &ReminderWorker{
		vatRepo:    vatRepo,
		vatService: vatService,
		cfg:        cfg,
		now:        time.Now,
		lastSent:   make(map[reminderKey]time.Time),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight sends have finished.
func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	log.Printf("reminderWorker: started (interval=%s, concurrency=%d)", w.cfg.Interval, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reminderWorker: shutting down, waiting for in-flight reminders...")
			w.wg.Wait()
			log.Printf("reminderWorker: shutdown complete")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce sends one round of reminders and returns the number of users
// reminded. December returns are due in January, so January also covers
// the previous year.
func (w *ReminderWorker) RunOnce(ctx context.Context) int {
	now := w.now().UTC()
	years := []int{now.Year()}
	if now.Month() == time.January {
		years = append([]int{now.Year() - 1}, years...)
	}

	w.forgetExpired(now)

	sem := make(chan struct{}, w.cfg.Concurrency)
	var mu sync.Mutex
	reminded := 0

scan:
	for _, year := range years {
		users, err := w.vatRepo.ListUsersWithTransactions(ctx, year)
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("reminderWorker: ListUsersWithTransactions %d error: %v", year, err)
			}
			continue
		}

		for _, userID := range users {
			userID, year := userID, year
			key := reminderKey{userID: userID, year: year}
			if w.recentlySent(key, now) {
				continue
			}

			if ctx.Err() != nil {
				break scan
			}
			select {
			case sem <- struct{}{}: // acquire
			case <-ctx.Done():
				break scan
			}
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				defer func() { <-sem }() // release

				// In-flight sends complete even during shutdown.
				sendCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()

				n, err := w.vatService.SendReminders(sendCtx, userID, year)
				if err != nil {
					log.Printf("reminderWorker: user %s year %d: %v", userID, year, err)
					return
				}
				if n > 0 {
					w.markSent(key, now)
					mu.Lock()
					reminded++
					mu.Unlock()
				}
			}()
		}
	}
	w.wg.Wait()
	return reminded
}

func (w *ReminderWorker) recentlySent(key reminderKey, now time.Time) bool {
	if w.cfg.ResendAfter <= 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	last, ok := w.lastSent[key]
	return ok && now.Sub(last) < w.cfg.ResendAfter
}

func (w *ReminderWorker) forgetExpired(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key, last := range w.lastSent {
		if now.Sub(last) >= w.cfg.ResendAfter {
			delete(w.lastSent, key)
		}
	}
}

func (w *ReminderWorker) markSent(key reminderKey, now time.Time) {
	w.mu.Lock()
	w.lastSent[key] = now
	w.mu.Unlock()
}
