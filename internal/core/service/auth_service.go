package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

const profilePicPrefix = "profile_pics"

// AuthService implements registration and login against the user store.
type AuthService struct {
	repo   ports.UserRepository
	store  ports.ObjectStore
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, store ports.ObjectStore, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, store: store, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("unknown role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	picPath := ""
	if in.Picture != nil {
		key := fmt.Sprintf("%s/%s_%s", profilePicPrefix, pictureID(), SanitizeFilename(in.Picture.Filename))
		url, err := s.store.Put(ctx, key, in.Picture.ContentType, in.Picture.Reader, in.Picture.Size)
		if err != nil {
			return nil, fmt.Errorf("store profile picture: %w", err)
		}
		s.log.Debug().Str("key", key).Str("url", url).Msg("profile picture stored")
		picPath = key
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:      in.FirstName,
		MiddleName:     in.MiddleName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		PasswordHash:   string(hash),
		Role:           in.Role,
		ProfilePicPath: picPath,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login returns a session token for valid credentials. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Email)
}

// pictureID yields the random component of an object key, dash-free to keep
// keys easy to eyeball in bucket listings.
func pictureID() string {
	return fmt.Sprintf("%x", [16]byte(uuid.New()))
}
