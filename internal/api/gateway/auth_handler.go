package gateway

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilehub/user-platform/internal/api"
	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

// AuthHandler serves the public registration and login endpoints. The
// response shapes here predate the shared envelope and are kept verbatim
// for client compatibility.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Register handles POST /create_user (multipart form).
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  api.Envelope
// @Failure      400  {object}  map[string]string
// @Router       /create_user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	in := ports.RegisterInput{
		FirstName:   c.FormValue("first_name"),
		MiddleName:  c.FormValue("middle_name"),
		LastName:    c.FormValue("last_name"),
		Email:       c.FormValue("email"),
		PhoneNumber: c.FormValue("phone_number"),
		Password:    c.FormValue("password"),
		Role:        c.FormValue("role"),
	}

	if msg := api.RegistrationMessage(in.FirstName, in.LastName, in.Email, in.PhoneNumber, in.Password, in.Role); msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": msg})
	}

	if fh, err := c.FormFile("profile_pic"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()
		in.Picture = &ports.FileUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		}
	}

	if _, err := h.auth.Register(c.Request().Context(), in); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, "Email or phone number already in use"))
		}
		return err
	}

	// Historical quirk: the body says 200 while the HTTP status is 201.
	return c.JSON(http.StatusCreated, api.Success(http.StatusOK, "User created successfully"))
}

// Login handles POST /login.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"msg": "invalid payload"})
	}

	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"msg": "Email ID is required"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"msg": "Password is required"})
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// Unknown email and wrong password share this message so the
			// response never reveals which check failed.
			return c.JSON(http.StatusUnauthorized, map[string]string{"msg": "Invalid User Credentials!"})
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}
