package ports

import (
	"context"
	"io"

	"github.com/profilehub/user-platform/internal/core/domain"
)

// FileUpload is an incoming multipart file as seen by the core services.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// RegisterInput carries the validated registration form. Picture is optional.
type RegisterInput struct {
	FirstName   string
	MiddleName  string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        string
	Picture     *FileUpload
}

type AuthService interface {
	// Register stores the optional profile picture, rejects duplicate
	// identities with domain.ErrUserExists, and persists the user with a
	// hashed password.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login verifies the credentials and returns a session token. An
	// unknown email and a wrong password both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenVerifier resolves a raw bearer token to the identity it was issued
// for, failing with domain.ErrTokenExpired or domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (identity string, err error)
}
