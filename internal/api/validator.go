package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// profileValidate runs the shared profile-field checks in their historical
// fail-fast order and returns the first violation's client-facing message.
// The wording is part of the public API contract and is kept verbatim.
func profileValidate(v *validator.Validate, firstName, lastName, email, phone string) string {
	if v.Var(firstName, "required") != nil || v.Var(lastName, "required") != nil {
		return "First name and last name are required"
	}
	if v.Var(email, "required") != nil {
		return "Email is required"
	}
	if v.Var(phone, "required,len=10") != nil {
		return "Please enter valid phone number"
	}
	return ""
}

// ProfileFieldsMessage validates the fields shared by registration and
// profile update; empty result means valid.
func ProfileFieldsMessage(firstName, lastName, email, phone string) string {
	return profileValidate(validator.New(), firstName, lastName, email, phone)
}

// RegistrationMessage validates the full registration form; empty result
// means valid.
func RegistrationMessage(firstName, lastName, email, phone, password, role string) string {
	v := validator.New()
	if msg := profileValidate(v, firstName, lastName, email, phone); msg != "" {
		return msg
	}
	if v.Var(password, "required") != nil {
		return "Password is required"
	}
	if v.Var(role, "oneof=user admin sub-admin") != nil {
		return "Please enter valid role i.e sub-admin, admin, user"
	}
	return ""
}
