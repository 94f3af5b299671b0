package domain

import (
	"errors"
	"time"
)

const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleSubAdmin = "sub-admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email or phone number already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUpdateForbidden = errors.New("target profile not updatable")
var ErrNotUpdated = errors.New("user not updated")

// ValidRole reports whether role is one of the enumerated user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSubAdmin:
		return true
	}
	return false
}

// User models a registered account.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	MiddleName     string    `json:"middle_name,omitempty"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	ProfilePicPath string    `json:"profile_pic_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
