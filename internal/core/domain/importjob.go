package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

var ErrInvalidFileFormat = errors.New("invalid file format")
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ImportJob is the message placed on the bulk-import queue. The file is
// already persisted server-side when the job is published; FileSHA256 keys
// per-row idempotency marks so redelivery cannot double-process rows.
type ImportJob struct {
	ID          string    `json:"job_id"`
	FilePath    string    `json:"file_path"`
	FileSHA256  string    `json:"file_sha256"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// AcceptedImportExt reports whether the filename carries an importable
// extension (csv or xlsx).
func AcceptedImportExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}
