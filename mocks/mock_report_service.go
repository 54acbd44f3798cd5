package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"naijatax/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) WriteSummaryCSV(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error {
	args := m.Called(ctx, userID, year, w)
	return args.Error(0)
}

func (m *MockReportService) WriteSummaryXLSX(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error {
	args := m.Called(ctx, userID, year, w)
	return args.Error(0)
}

func (m *MockReportService) WriteSummaryPDF(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error {
	args := m.Called(ctx, userID, year, w)
	return args.Error(0)
}

func (m *MockReportService) ArchiveSummary(ctx context.Context, userID uuid.UUID, year int) (*service.ReportArchive, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportArchive), args.Error(1)
}
