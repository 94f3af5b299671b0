package service

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/profilehub/user-platform/internal/api/metrics"
	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

// RowDedup abstracts the idempotency store (Redis). MarkRow records that a
// row of the given file has been handled and reports whether it already was.
type RowDedup interface {
	MarkRow(ctx context.Context, fileHash string, row int) (bool, error)
}

// ImportService accepts bulk-upload files and processes queued jobs.
// Submit runs on the HTTP path and must stay fast; Process runs in the
// worker and may take as long as it needs.
type ImportService struct {
	queue     ports.JobQueue
	dedup     RowDedup
	uploadDir string
	rowPause  time.Duration
	log       zerolog.Logger
}

func NewImportService(queue ports.JobQueue, dedup RowDedup, uploadDir string, rowPause time.Duration, log zerolog.Logger) *ImportService {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &ImportService{queue: queue, dedup: dedup, uploadDir: uploadDir, rowPause: rowPause, log: log}
}

func (s *ImportService) Submit(ctx context.Context, file ports.FileUpload) (*domain.ImportJob, error) {
	if !domain.AcceptedImportExt(file.Filename) {
		return nil, domain.ErrInvalidFileFormat
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, SanitizeFilename(file.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	// Hash while writing so the job carries the file's content identity.
	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dst, h), file.Reader); err != nil {
		_ = dst.Close()
		return nil, fmt.Errorf("persist upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("persist upload: %w", err)
	}

	job := domain.ImportJob{
		ID:          uuid.NewString(),
		FilePath:    path,
		FileSHA256:  hex.EncodeToString(h.Sum(nil)),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		return nil, fmt.Errorf("enqueue import job: %w", err)
	}

	metrics.ImportJobsTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Str("job_id", job.ID).Str("file", path).Msg("import job enqueued")
	return &job, nil
}

// Process runs one queued job: open the stored file, walk its records in
// order, and handle each row once. Rows already marked for this file hash
// are skipped, so at-least-once redelivery never double-processes a row.
func (s *ImportService) Process(ctx context.Context, job domain.ImportJob) error {
	headers, rows, err := readRows(job.FilePath)
	if err != nil {
		metrics.ImportJobsTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("read %s: %w", job.FilePath, err)
	}

	var processed, skipped int
	for i, rec := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		already, err := s.dedup.MarkRow(ctx, job.FileSHA256, i)
		if err != nil {
			s.log.Warn().Err(err).Int("row", i).Msg("row dedup check failed, processing anyway")
		} else if already {
			skipped++
			metrics.ImportRowsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		s.processRow(job, i, headers, rec)
		processed++
		metrics.ImportRowsTotal.WithLabelValues("processed").Inc()
	}

	metrics.ImportJobsTotal.WithLabelValues("completed").Inc()
	s.log.Info().
		Str("job_id", job.ID).
		Int("processed", processed).
		Int("skipped", skipped).
		Msg("import job done")
	return nil
}

// processRow is the per-record work step. The real ingestion is still being
// specified product-side; until then each row is logged field-by-field and
// the configured pause stands in for the eventual write.
func (s *ImportService) processRow(job domain.ImportJob, idx int, headers, rec []string) {
	fields := zerolog.Dict()
	for i, h := range headers {
		if i < len(rec) {
			fields.Str(h, rec[i])
		}
	}
	s.log.Info().Str("job_id", job.ID).Int("row", idx).Dict("fields", fields).Msg("processing row")

	if s.rowPause > 0 {
		time.Sleep(s.rowPause)
	}
}

// readRows loads a tabular file into a header slice plus data rows. The first
// record is always treated as the header.
func readRows(path string) ([]string, [][]string, error) {
	var records [][]string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		records, err = r.ReadAll()
		if err != nil {
			return nil, nil, err
		}

	case ".xlsx":
		wb, err := excelize.OpenFile(path)
		if err != nil {
			return nil, nil, err
		}
		defer wb.Close()

		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets")
		}
		records, err = wb.GetRows(sheets[0])
		if err != nil {
			return nil, nil, err
		}

	default:
		return nil, nil, domain.ErrInvalidFileFormat
	}

	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}
