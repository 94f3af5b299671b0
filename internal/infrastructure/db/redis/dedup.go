package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rowMarkTTL = 24 * time.Hour

// RowDedup provides per-row idempotency marks backed by Redis.
// Key format: import:<file_sha256>:<row_index>
type RowDedup struct {
	client *redis.Client
}

// NewRowDedup creates a RowDedup wrapping the given Redis client.
func NewRowDedup(client *redis.Client) *RowDedup {
	return &RowDedup{client: client}
}

// MarkRow atomically records that this row of this file has been handled and
// reports whether it already was. SETNX makes mark-and-check a single
// round-trip, so two deliveries of the same job cannot both claim a row.
func (d *RowDedup) MarkRow(ctx context.Context, fileHash string, row int) (bool, error) {
	set, err := d.client.SetNX(ctx, d.key(fileHash, row), "1", rowMarkTTL).Result()
	if err != nil {
		return false, fmt.Errorf("row dedup mark: %w", err)
	}
	return !set, nil
}

func (d *RowDedup) key(fileHash string, row int) string {
	return fmt.Sprintf("import:%s:%d", fileHash, row)
}
