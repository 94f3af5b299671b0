package ports

import (
	"context"

	"github.com/profilehub/user-platform/internal/core/domain"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)

	// List returns one page of profiles ordered by descending id. Page
	// numbers start at 1; pageSize is clamped to a server-side maximum.
	List(ctx context.Context, pageSize, page int) ([]domain.User, error)

	// Update applies fields to the target profile. Targets whose stored
	// role is "user" fail with domain.ErrUpdateForbidden regardless of
	// who is calling.
	Update(ctx context.Context, userID string, fields ProfileFields) error

	Delete(ctx context.Context, userID string) error
}
