package ports

import (
	"context"

	"github.com/profilehub/user-platform/internal/core/domain"
)

// JobQueue publishes import jobs for asynchronous processing. Enqueue is
// fire-and-forget from the caller's point of view; delivery is at-least-once.
type JobQueue interface {
	Enqueue(ctx context.Context, job domain.ImportJob) error
}

type ImportService interface {
	// Submit persists the uploaded file and enqueues a processing job.
	// It returns as soon as the job is published; it never waits for the
	// worker. Files without a csv/xlsx extension fail with
	// domain.ErrInvalidFileFormat.
	Submit(ctx context.Context, file FileUpload) (*domain.ImportJob, error)

	// Process runs one job to completion: iterate the file's rows in
	// order, skipping rows already marked processed for this file hash.
	Process(ctx context.Context, job domain.ImportJob) error
}
