package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"naijatax/internal/domain"
	"naijatax/internal/port"
	"naijatax/internal/service"
	"naijatax/internal/taxengine"
	"naijatax/internal/xlsxexport"
	"naijatax/mocks"
)

func sampleSummary(userID uuid.UUID) *taxengine.Summary {
	return &taxengine.Summary{
		UserID:            userID,
		Year:              2024,
		AccountType:       domain.AccountTypeIndividual,
		GrossIncome:       dec("3000000"),
		TaxableIncome:     dec("1500000"),
		PITOrCITLiability: dec("205000"),
		TotalLiability:    dec("205000"),
		Outstanding:       dec("205000"),
		PIT: &taxengine.PITResult{
			TaxableIncome: dec("1500000"),
			Tax:           dec("205000"),
		},
	}
}

func TestReportService_WriteSummaryCSV(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	svc := service.NewReportService(taxSvc, new(mocks.MockObjectStorage), service.ReportConfig{})
	userID := uuid.New()

	taxSvc.On("Summary", mock.Anything, userID, 2024).Return(sampleSummary(userID), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteSummaryCSV(context.Background(), userID, 2024, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "missing BOM")
	assert.Contains(t, out, "Section,Item,Period,Amount")
	assert.Contains(t, out, "205000.00")
}

func TestReportService_WriteSummaryCSV_PropagatesError(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	svc := service.NewReportService(taxSvc, new(mocks.MockObjectStorage), service.ReportConfig{})
	userID := uuid.New()

	taxSvc.On("Summary", mock.Anything, userID, 2019).Return(nil, domain.ErrRateTableNotFound)

	var buf bytes.Buffer
	err := svc.WriteSummaryCSV(context.Background(), userID, 2019, &buf)
	assert.ErrorIs(t, err, domain.ErrRateTableNotFound)
	assert.Zero(t, buf.Len())
}

func TestReportService_WriteSummaryXLSX(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	svc := service.NewReportService(taxSvc, new(mocks.MockObjectStorage), service.ReportConfig{})
	userID := uuid.New()

	taxSvc.On("Summary", mock.Anything, userID, 2024).Return(sampleSummary(userID), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteSummaryXLSX(context.Background(), userID, 2024, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), xlsxexport.SheetSummary)
}

func TestReportService_ArchiveSummary(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(taxSvc, storage, service.ReportConfig{Prefix: "reports", PresignExpiry: 15 * time.Minute})
	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	service.SetReportClock(svc, func() time.Time { return now })
	userID := uuid.New()
	wantKey := "reports/" + userID.String() + "/2024/summary_20250203T040506Z.xlsx"

	taxSvc.On("Summary", mock.Anything, userID, 2024).Return(sampleSummary(userID), nil)
	storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutInput) bool {
		return in.Key == wantKey && in.ContentType == xlsxexport.ContentType && in.Size > 0
	})).Return(&port.PutOutput{Key: wantKey}, nil)
	storage.On("PresignGet", mock.Anything, wantKey, 15*time.Minute).Return("https://example.com/signed", nil)

	archive, err := svc.ArchiveSummary(context.Background(), userID, 2024)
	require.NoError(t, err)
	assert.Equal(t, wantKey, archive.Key)
	assert.Equal(t, "https://example.com/signed", archive.URL)
	assert.Equal(t, now.Add(15*time.Minute), archive.ExpiresAt)
	storage.AssertExpectations(t)
}

func TestReportService_ArchiveSummary_UploadFails(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(taxSvc, storage, service.ReportConfig{})
	userID := uuid.New()

	taxSvc.On("Summary", mock.Anything, userID, 2024).Return(sampleSummary(userID), nil)
	storage.On("Put", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := svc.ArchiveSummary(context.Background(), userID, 2024)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	storage.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_ArchiveSummary_PresignFailsRemovesObject(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(taxSvc, storage, service.ReportConfig{Prefix: "reports", PresignExpiry: time.Minute})
	userID := uuid.New()

	taxSvc.On("Summary", mock.Anything, userID, 2024).Return(sampleSummary(userID), nil)
	storage.On("Put", mock.Anything, mock.Anything).Return(&port.PutOutput{}, nil)
	storage.On("PresignGet", mock.Anything, mock.Anything, time.Minute).Return("", errors.New("no credentials"))
	storage.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.ArchiveSummary(context.Background(), userID, 2024)
	assert.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, mock.AnythingOfType("string"))
}

func TestReportService_WriteSummaryPDF(t *testing.T) {
	taxSvc := new(mocks.MockTaxService)
	svc := service.NewReportService(taxSvc, new(mocks.MockObjectStorage), service.ReportConfig{})
	userID := uuid.New()

	taxSvc.On("Summary", mock.Anything, userID, 2024).Return(sampleSummary(userID), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteSummaryPDF(context.Background(), userID, 2024, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
