package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

type stubJobQueue struct {
	jobs []domain.ImportJob
	err  error
}

func (q *stubJobQueue) Enqueue(_ context.Context, job domain.ImportJob) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

type memRowDedup struct {
	seen map[string]bool
	err  error
}

func newMemRowDedup() *memRowDedup { return &memRowDedup{seen: make(map[string]bool)} }

func (d *memRowDedup) MarkRow(_ context.Context, fileHash string, row int) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	key := fmt.Sprintf("%s:%d", fileHash, row)
	already := d.seen[key]
	d.seen[key] = true
	return already, nil
}

func newImportService(t *testing.T, queue ports.JobQueue, dedup RowDedup) *ImportService {
	t.Helper()
	return NewImportService(queue, dedup, t.TempDir(), 0, zerolog.Nop())
}

func upload(name, body string) ports.FileUpload {
	return ports.FileUpload{
		Filename:    name,
		ContentType: "application/octet-stream",
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func TestImportService_Submit_RejectsUnknownExtension(t *testing.T) {
	queue := &stubJobQueue{}
	svc := newImportService(t, queue, newMemRowDedup())

	_, err := svc.Submit(context.Background(), upload("data.txt", "a,b\n1,2\n"))
	if err != domain.ErrInvalidFileFormat {
		t.Fatalf("expected ErrInvalidFileFormat, got %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("rejected upload must not enqueue a job")
	}
}

func TestImportService_Submit_AcceptsCSVAndXLSX(t *testing.T) {
	for _, name := range []string{"data.csv", "data.xlsx", "DATA.CSV"} {
		queue := &stubJobQueue{}
		svc := newImportService(t, queue, newMemRowDedup())

		job, err := svc.Submit(context.Background(), upload(name, "name,email\nana,a@b.c\n"))
		if err != nil {
			t.Fatalf("Submit(%s) returned error: %v", name, err)
		}
		if len(queue.jobs) != 1 {
			t.Fatalf("Submit(%s): expected exactly one enqueued job, got %d", name, len(queue.jobs))
		}
		if job.ID == "" || job.FileSHA256 == "" {
			t.Fatalf("Submit(%s): job missing id or hash: %+v", name, job)
		}
		if _, err := os.Stat(job.FilePath); err != nil {
			t.Fatalf("Submit(%s): stored file missing: %v", name, err)
		}
	}
}

func TestImportService_Submit_SanitizesStoredName(t *testing.T) {
	queue := &stubJobQueue{}
	svc := newImportService(t, queue, newMemRowDedup())

	job, err := svc.Submit(context.Background(), upload("../../etc/passwd.csv", "a\n1\n"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if base := filepath.Base(job.FilePath); base != "passwd.csv" {
		t.Fatalf("stored filename not sanitized: %q", job.FilePath)
	}
	if strings.Contains(job.FilePath, "..") {
		t.Fatalf("stored path escapes upload dir: %q", job.FilePath)
	}
}

func TestImportService_Process_CSV(t *testing.T) {
	queue := &stubJobQueue{}
	dedup := newMemRowDedup()
	svc := newImportService(t, queue, dedup)

	job, err := svc.Submit(context.Background(), upload("people.csv", "name,email\nana,a@b.c\nbob,b@c.d\n"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := svc.Process(context.Background(), *job); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if got := len(dedup.seen); got != 2 {
		t.Fatalf("expected 2 rows marked, got %d", got)
	}
}

func TestImportService_Process_RedeliverySkipsMarkedRows(t *testing.T) {
	queue := &stubJobQueue{}
	dedup := newMemRowDedup()
	svc := newImportService(t, queue, dedup)

	job, err := svc.Submit(context.Background(), upload("people.csv", "name\nana\nbob\n"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := svc.Process(context.Background(), *job); err != nil {
		t.Fatalf("first Process returned error: %v", err)
	}

	// Redelivery of the same job: every row is already marked, so the run
	// completes without re-marking anything new.
	before := len(dedup.seen)
	if err := svc.Process(context.Background(), *job); err != nil {
		t.Fatalf("second Process returned error: %v", err)
	}
	if len(dedup.seen) != before {
		t.Fatalf("redelivery marked new rows: before=%d after=%d", before, len(dedup.seen))
	}
}

func TestImportService_Process_MissingFile(t *testing.T) {
	svc := newImportService(t, &stubJobQueue{}, newMemRowDedup())

	job := domain.ImportJob{ID: "j1", FilePath: filepath.Join(t.TempDir(), "gone.csv"), FileSHA256: "abc"}
	if err := svc.Process(context.Background(), job); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportService_Process_Canceled(t *testing.T) {
	dedup := newMemRowDedup()
	svc := newImportService(t, &stubJobQueue{}, dedup)

	job, err := svc.Submit(context.Background(), upload("people.csv", "name\nana\n"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Process(ctx, *job); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(dedup.seen) != 0 {
		t.Fatalf("canceled run must not mark rows")
	}
}
