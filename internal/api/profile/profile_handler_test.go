package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

type stubProfileService struct {
	user      *domain.User
	users     []domain.User
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	lastPageSize, lastPage int
	updatedID              string
	updatedFields          ports.ProfileFields
}

func (s *stubProfileService) Get(context.Context, string) (*domain.User, error) {
	return s.user, s.getErr
}

func (s *stubProfileService) List(_ context.Context, pageSize, page int) ([]domain.User, error) {
	s.lastPageSize, s.lastPage = pageSize, page
	return s.users, s.listErr
}

func (s *stubProfileService) Update(_ context.Context, id string, fields ports.ProfileFields) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedID, s.updatedFields = id, fields
	return nil
}

func (s *stubProfileService) Delete(context.Context, string) error { return s.deleteErr }

func jsonContext(method, target, payload string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestProfileGet_Success(t *testing.T) {
	svc := &stubProfileService{user: &domain.User{
		ID:           "u1",
		FirstName:    "Ana",
		Email:        "ana@example.com",
		Role:         domain.RoleAdmin,
		PasswordHash: "$2a$10$secret",
	}}
	c, rec := jsonContext(http.MethodGet, "/profile?user_id=u1", "")

	if err := NewProfileHandler(svc).Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if body["status"] != "success" || body["status_code"] != float64(200) {
		t.Fatalf("unexpected envelope: %v", body)
	}
	data := body["data"].(map[string]any)
	if data["email"] != "ana@example.com" || data["role"] != "admin" {
		t.Fatalf("unexpected data: %v", data)
	}
	// The password hash must never appear in any response field.
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestProfileGet_MissingID(t *testing.T) {
	c, rec := jsonContext(http.MethodGet, "/profile", "")
	if err := NewProfileHandler(&stubProfileService{}).Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeEnvelope(t, rec); body["message"] != "User ID is required" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestProfileGet_NotFound(t *testing.T) {
	svc := &stubProfileService{getErr: domain.ErrUserNotFound}
	c, rec := jsonContext(http.MethodGet, "/profile?user_id=missing", "")

	if err := NewProfileHandler(svc).Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeEnvelope(t, rec); body["message"] != "User not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestProfileList_PassesPaging(t *testing.T) {
	svc := &stubProfileService{users: []domain.User{{ID: "u1"}, {ID: "u2"}}}
	c, rec := jsonContext(http.MethodGet, "/profiles?page_size=25&page=3", "")

	if err := NewProfileHandler(svc).List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastPageSize != 25 || svc.lastPage != 3 {
		t.Fatalf("paging not forwarded: size=%d page=%d", svc.lastPageSize, svc.lastPage)
	}
	body := decodeEnvelope(t, rec)
	if data := body["data"].([]any); len(data) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(data))
	}
}

func TestProfileList_EmptyIsArray(t *testing.T) {
	c, rec := jsonContext(http.MethodGet, "/profiles", "")
	if err := NewProfileHandler(&stubProfileService{}).List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	body := decodeEnvelope(t, rec)
	if _, ok := body["data"].([]any); !ok {
		t.Fatalf("empty list must serialize as [], got %v", body["data"])
	}
}

func validUpdatePayload() string {
	return `{"user_id":"u1","first_name":"Ana","last_name":"Iglesias","email":"ana@example.com","phone_number":"5550001111"}`
}

func TestProfileUpdate_Success(t *testing.T) {
	svc := &stubProfileService{}
	c, rec := jsonContext(http.MethodPost, "/profileUpdate", validUpdatePayload())

	if err := NewProfileHandler(svc).Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if body := decodeEnvelope(t, rec); body["message"] != "User Data Updated Successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if svc.updatedID != "u1" || svc.updatedFields.FirstName != "Ana" {
		t.Fatalf("service not called with payload: id=%q fields=%+v", svc.updatedID, svc.updatedFields)
	}
}

func TestProfileUpdate_ValidationMessages(t *testing.T) {
	cases := []struct {
		payload string
		want    string
	}{
		{`{"user_id":"u1","last_name":"I","email":"a@b.c","phone_number":"5550001111"}`, "First name and last name are required"},
		{`{"user_id":"u1","first_name":"Ana","last_name":"I","phone_number":"5550001111"}`, "Email is required"},
		{`{"user_id":"u1","first_name":"Ana","last_name":"I","email":"a@b.c","phone_number":"123"}`, "Please enter valid phone number"},
		{`{"first_name":"Ana","last_name":"I","email":"a@b.c","phone_number":"5550001111"}`, "User ID is required"},
	}
	for _, tc := range cases {
		svc := &stubProfileService{}
		c, rec := jsonContext(http.MethodPost, "/profileUpdate", tc.payload)

		if err := NewProfileHandler(svc).Update(c); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", tc.payload, rec.Code)
		}
		if body := decodeEnvelope(t, rec); body["message"] != tc.want {
			t.Fatalf("payload %s: got %v, want %q", tc.payload, body["message"], tc.want)
		}
		if svc.updatedID != "" {
			t.Fatalf("payload %s: invalid request must not reach the service", tc.payload)
		}
	}
}

func TestProfileUpdate_ErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrUpdateForbidden, http.StatusBadRequest, "You are not authorized to update user data."},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrNotUpdated, http.StatusNotFound, "User not Updated Successfully"},
	}
	for _, tc := range cases {
		svc := &stubProfileService{updateErr: tc.err}
		c, rec := jsonContext(http.MethodPost, "/profileUpdate", validUpdatePayload())

		if err := NewProfileHandler(svc).Update(c); err != nil {
			t.Fatalf("%v: Update returned error: %v", tc.err, err)
		}
		if rec.Code != tc.wantCode {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.wantCode, rec.Code)
		}
		if body := decodeEnvelope(t, rec); body["message"] != tc.wantMsg {
			t.Fatalf("%v: got %v, want %q", tc.err, body["message"], tc.wantMsg)
		}
	}
}

func TestProfileDelete(t *testing.T) {
	c, rec := jsonContext(http.MethodDelete, "/profileDelete?user_id=u1", "")
	if err := NewProfileHandler(&stubProfileService{}).Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeEnvelope(t, rec); body["message"] != "User Deleted Successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestProfileDelete_NotFound(t *testing.T) {
	svc := &stubProfileService{deleteErr: domain.ErrUserNotFound}
	c, rec := jsonContext(http.MethodDelete, "/profileDelete?user_id=missing", "")

	if err := NewProfileHandler(svc).Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeEnvelope(t, rec); body["message"] != "User not Deleted Successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}
