package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProfileService implements profile CRUD on top of the user repository.
type ProfileService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *ProfileService) List(ctx context.Context, pageSize, page int) ([]domain.User, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	offset := int64(page-1) * int64(pageSize)
	return s.repo.List(ctx, int64(pageSize), offset)
}

// Update applies fields to the target profile. The gate is on the TARGET's
// stored role, not the caller's: profiles whose role is "user" are never
// updatable through this path. That matches the upstream product behavior
// exactly, odd as it reads.
func (s *ProfileService) Update(ctx context.Context, userID string, fields ports.ProfileFields) error {
	target, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleUser {
		return domain.ErrUpdateForbidden
	}

	// The repository re-checks the role inside the update filter, so a
	// concurrent role change between the read above and the write cannot
	// bypass the gate; the read only classifies not-found vs forbidden.
	if err := s.repo.UpdateNonUserRole(ctx, userID, fields); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The target existed a moment ago; the write still matched
			// nothing. Reported as an update miss, not a lookup miss.
			return domain.ErrNotUpdated
		}
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return nil
}

func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("profile deleted")
	return nil
}
