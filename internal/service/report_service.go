package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/google/uuid"

	"naijatax/internal/csvexport"
	"naijatax/internal/domain"
	"naijatax/internal/pdfexport"
	"naijatax/internal/port"
	"naijatax/internal/xlsxexport"
)

// ReportArchive describes a summary workbook stored in object storage.
type ReportArchive struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportConfig holds report archive settings.
type ReportConfig struct {
	Prefix        string
	PresignExpiry time.Duration
}

// ReportService renders tax summaries for download and archives them.
type ReportService interface {
	WriteSummaryCSV(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error
	WriteSummaryXLSX(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error
	WriteSummaryPDF(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error
	ArchiveSummary(ctx context.Context, userID uuid.UUID, year int) (*ReportArchive, error)
}

type reportService struct {
	taxService TaxService
	storage    port.ObjectStorage
	cfg        ReportConfig
	now        func() time.Time
}

// NewReportService creates a new ReportService implementation.
func NewReportService(taxService TaxService, storage port.ObjectStorage, cfg ReportConfig) ReportService {
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = time.Hour
	}
	return &reportService{taxService: taxService, storage: storage, cfg: cfg, now: time.Now}
}

// WriteSummaryCSV writes a BOM-prefixed CSV so spreadsheet tools pick UTF-8.
func (s *reportService) WriteSummaryCSV(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error {
	summary, err := s.taxService.Summary(ctx, userID, year)
	if err != nil {
		return err
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("reportService.WriteSummaryCSV: %w", err)
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("reportService.WriteSummaryCSV: %w", err)
	}
	if err := cw.WriteSummary(summary); err != nil {
		return fmt.Errorf("reportService.WriteSummaryCSV: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) WriteSummaryXLSX(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error {
	summary, err := s.taxService.Summary(ctx, userID, year)
	if err != nil {
		return err
	}
	return xlsxexport.WriteSummary(w, summary)
}

// WriteSummaryPDF writes the printable statement of the year.
func (s *reportService) WriteSummaryPDF(ctx context.Context, userID uuid.UUID, year int, w io.Writer) error {
	summary, err := s.taxService.Summary(ctx, userID, year)
	if err != nil {
		return err
	}
	return pdfexport.WriteSummary(w, summary)
}

// ArchiveSummary stores the year's workbook under
// {prefix}/{user}/{year}/summary_{timestamp}.xlsx and returns a presigned link.
func (s *reportService) ArchiveSummary(ctx context.Context, userID uuid.UUID, year int) (*ReportArchive, error) {
	var buf bytes.Buffer
	if err := s.WriteSummaryXLSX(ctx, userID, year, &buf); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := path.Join(s.cfg.Prefix, userID.String(), fmt.Sprintf("%d", year),
		fmt.Sprintf("summary_%s.xlsx", now.Format("20060102T150405Z")))

	if _, err := s.storage.Put(ctx, port.PutInput{
		Key:         key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: xlsxexport.ContentType,
		Size:        int64(buf.Len()),
	}); err != nil {
		log.Printf("reportService.ArchiveSummary: upload %s failed: %v", key, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.PresignGet(ctx, key, s.cfg.PresignExpiry)
	if err != nil {
		// An archive nobody can download is removed again.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("reportService.ArchiveSummary: removing %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("reportService.ArchiveSummary presign: %w", err)
	}
	return &ReportArchive{Key: key, URL: url, ExpiresAt: now.Add(s.cfg.PresignExpiry)}, nil
}
