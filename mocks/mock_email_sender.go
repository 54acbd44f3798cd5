package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"naijatax/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVATFilingReminder(ctx context.Context, reminder port.VATReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}
