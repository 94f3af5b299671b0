package ports

import (
	"context"

	"github.com/profilehub/user-platform/internal/core/domain"
)

// ProfileFields carries the mutable profile columns applied by an update.
type ProfileFields struct {
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	PhoneNumber    string
	ProfilePicPath string
}

// UserRepository defines the persistence interface for user records.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// email or phone number is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// List returns up to limit users ordered by descending id.
	List(ctx context.Context, limit, offset int64) ([]domain.User, error)

	// UpdateNonUserRole applies fields to the user with the given id, but
	// only when its stored role is admin or sub-admin; the role condition
	// is part of the update filter so no concurrent role change can slip
	// between check and write. Returns domain.ErrUserNotFound when the
	// filter matches nothing.
	UpdateNonUserRole(ctx context.Context, id string, fields ProfileFields) error

	// Delete removes the user by id. Returns domain.ErrUserNotFound when
	// no row was deleted.
	Delete(ctx context.Context, id string) error
}
