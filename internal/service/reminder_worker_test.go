package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/service"
	"naijatax/mocks"
)

func TestReminderWorker_RunOnce(t *testing.T) {
	repo := new(mocks.MockVATRepo)
	vatSvc := new(mocks.MockVATService)
	w := service.NewReminderWorker(repo, vatSvc, service.ReminderConfig{Interval: time.Hour, Concurrency: 2})
	w.SetClock(func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) })

	due, quiet, broken := uuid.New(), uuid.New(), uuid.New()
	repo.On("ListUsersWithTransactions", mock.Anything, 2024).Return([]uuid.UUID{due, quiet, broken}, nil)
	vatSvc.On("SendReminders", mock.Anything, due, 2024).Return(2, nil)
	vatSvc.On("SendReminders", mock.Anything, quiet, 2024).Return(0, nil)
	vatSvc.On("SendReminders", mock.Anything, broken, 2024).Return(0, errors.New("smtp down"))

	assert.Equal(t, 1, w.RunOnce(context.Background()))
	vatSvc.AssertExpectations(t)
	repo.AssertNotCalled(t, "ListUsersWithTransactions", mock.Anything, 2023)
}

func TestReminderWorker_RunOnce_JanuaryCoversPreviousYear(t *testing.T) {
	repo := new(mocks.MockVATRepo)
	vatSvc := new(mocks.MockVATService)
	w := service.NewReminderWorker(repo, vatSvc, service.ReminderConfig{Interval: time.Hour})
	w.SetClock(func() time.Time { return time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC) })

	userID := uuid.New()
	repo.On("ListUsersWithTransactions", mock.Anything, 2024).Return([]uuid.UUID{userID}, nil)
	repo.On("ListUsersWithTransactions", mock.Anything, 2025).Return(nil, nil)
	vatSvc.On("SendReminders", mock.Anything, userID, 2024).Return(1, nil)

	assert.Equal(t, 1, w.RunOnce(context.Background()))
	repo.AssertExpectations(t)
}

func TestReminderWorker_RunOnce_ListError(t *testing.T) {
	repo := new(mocks.MockVATRepo)
	vatSvc := new(mocks.MockVATService)
	w := service.NewReminderWorker(repo, vatSvc, service.ReminderConfig{Interval: time.Hour})
	w.SetClock(func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) })

	repo.On("ListUsersWithTransactions", mock.Anything, 2024).Return(nil, errors.New("timeout"))

	assert.Zero(t, w.RunOnce(context.Background()))
	vatSvc.AssertNotCalled(t, "SendReminders", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderWorker_StartStopsOnCancel(t *testing.T) {
	repo := new(mocks.MockVATRepo)
	vatSvc := new(mocks.MockVATService)
	w := service.NewReminderWorker(repo, vatSvc, service.ReminderConfig{Interval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestReminderWorker_RunOnce_CancelWhileWaitingForSlot(t *testing.T) {
	repo := new(mocks.MockVATRepo)
	vatSvc := new(mocks.MockVATService)
	w := service.NewReminderWorker(repo, vatSvc, service.ReminderConfig{Interval: time.Hour, Concurrency: 1})
	w.SetClock(func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) })

	first, second := uuid.New(), uuid.New()
	started := make(chan struct{})
	release := make(chan struct{})
	repo.On("ListUsersWithTransactions", mock.Anything, 2024).Return([]uuid.UUID{first, second}, nil)
	vatSvc.On("SendReminders", mock.Anything, first, 2024).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan int, 1)
	go func() { result <- w.RunOnce(ctx) }()

	<-started
	cancel()
	close(release)

	select {
	case n := <-result:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("RunOnce did not return after cancel")
	}
	vatSvc.AssertNotCalled(t, "SendReminders", mock.Anything, second, 2024)
}

func TestReminderWorker_RunOnce_WaitsBeforeResending(t *testing.T) {
	repo := new(mocks.MockVATRepo)
	vatSvc := new(mocks.MockVATService)
	w := service.NewReminderWorker(repo, vatSvc, service.ReminderConfig{
		Interval:    24 * time.Hour,
		ResendAfter: 72 * time.Hour,
	})
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	w.SetClock(func() time.Time { return now })

	reminded, idle := uuid.New(), uuid.New()
	repo.On("ListUsersWithTransactions", mock.Anything, 2024).Return([]uuid.UUID{reminded, idle}, nil)
	vatSvc.On("SendReminders", mock.Anything, reminded, 2024).Return(2, nil)
	vatSvc.On("SendReminders", mock.Anything, idle, 2024).Return(0, nil)

	assert.Equal(t, 1, w.RunOnce(context.Background()))

	now = now.Add(24 * time.Hour)
	assert.Zero(t, w.RunOnce(context.Background()))
	vatSvc.AssertNumberOfCalls(t, "SendReminders", 3)

	now = now.Add(48 * time.Hour)
	assert.Equal(t, 1, w.RunOnce(context.Background()))
	vatSvc.AssertNumberOfCalls(t, "SendReminders", 5)
}
