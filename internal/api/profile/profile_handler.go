package profile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/profilehub/user-platform/internal/api"
	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

// ProfileHandler serves the internal profile CRUD endpoints. These are only
// reached through the gateway, which has already verified the bearer token.
type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// profileView is the projection returned to clients. The password hash never
// appears here.
type profileView struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	MiddleName     string `json:"middle_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Role           string `json:"role"`
	ProfilePicPath string `json:"profile_pic_path"`
}

func toView(u *domain.User) profileView {
	return profileView{
		ID:             u.ID,
		FirstName:      u.FirstName,
		MiddleName:     u.MiddleName,
		LastName:       u.LastName,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		Role:           u.Role,
		ProfilePicPath: u.ProfilePicPath,
	}
}

// Get handles GET|POST /profile?user_id=.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, "User ID is required"))
	}

	user, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, api.Error(http.StatusNotFound, "User not found"))
		}
		return err
	}

	return c.JSON(http.StatusOK, api.SuccessData(http.StatusOK, toView(user)))
}

// List handles GET /profiles?page_size=&page=.
func (h *ProfileHandler) List(c echo.Context) error {
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	page, _ := strconv.Atoi(c.QueryParam("page"))

	users, err := h.profiles.List(c.Request().Context(), pageSize, page)
	if err != nil {
		return err
	}

	views := make([]profileView, 0, len(users))
	for i := range users {
		views = append(views, toView(&users[i]))
	}
	return c.JSON(http.StatusOK, api.SuccessData(http.StatusOK, views))
}

type updateRequest struct {
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	ProfilePic  string `json:"profile_pic"`
}

// Update handles POST /profileUpdate.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, "invalid payload"))
	}

	if msg := api.ProfileFieldsMessage(req.FirstName, req.LastName, req.Email, req.PhoneNumber); msg != "" {
		return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, msg))
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, "User ID is required"))
	}

	err := h.profiles.Update(c.Request().Context(), req.UserID, ports.ProfileFields{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		ProfilePicPath: req.ProfilePic,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUpdateForbidden):
			return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, "You are not authorized to update user data."))
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, api.Error(http.StatusNotFound, "User not found"))
		case errors.Is(err, domain.ErrNotUpdated):
			return c.JSON(http.StatusNotFound, api.Error(http.StatusNotFound, "User not Updated Successfully"))
		}
		return err
	}

	return c.JSON(http.StatusOK, api.Success(http.StatusOK, "User Data Updated Successfully"))
}

// Delete handles DELETE /profileDelete?user_id=.
func (h *ProfileHandler) Delete(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, api.Error(http.StatusBadRequest, "User ID is required"))
	}

	if err := h.profiles.Delete(c.Request().Context(), userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, api.Error(http.StatusNotFound, "User not Deleted Successfully"))
		}
		return err
	}

	return c.JSON(http.StatusOK, api.Success(http.StatusOK, "User Deleted Successfully"))
}
