package gateway

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/profilehub/user-platform/internal/api"
	"github.com/profilehub/user-platform/internal/infrastructure/upstream"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

// fakeBackend stands in for the profile or data service and records what the
// gateway sent it.
func fakeBackend(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = append(got, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   b,
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func newMultipartFile(t *testing.T, buf *bytes.Buffer, field, filename, content string) string {
	t.Helper()
	w := multipart.NewWriter(buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return w.FormDataContentType()
}

func newUpstreamClient(url string) *upstream.Client {
	return upstream.New(url, time.Second, 0, zerolog.Nop())
}

func proxyContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestProxy_GetProfile_RelaysVerbatim(t *testing.T) {
	srv, got := fakeBackend(t, http.StatusOK, `{"status":"success","status_code":200,"data":{}}`)
	h := NewProxyHandler(newUpstreamClient(srv.URL), nil)

	c, rec := proxyContext(http.MethodGet, "/user?user_id=42", nil)
	if err := h.GetProfile(c); err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"status":"success","status_code":200,"data":{}}` {
		t.Fatalf("body not relayed verbatim: %s", rec.Body.String())
	}
	if len(*got) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(*got))
	}
	up := (*got)[0]
	if up.Method != http.MethodGet || up.Path != "/profile" || up.Query != "user_id=42" {
		t.Fatalf("unexpected upstream request: %+v", up)
	}
	if up.Auth != "Bearer tok" {
		t.Fatalf("authorization not forwarded: %q", up.Auth)
	}
}

func TestProxy_UpstreamErrorStatusRelayed(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusNotFound, `{"status":"error","status_code":404,"message":"User not found"}`)
	h := NewProxyHandler(newUpstreamClient(srv.URL), nil)

	c, rec := proxyContext(http.MethodGet, "/user?user_id=bad", nil)
	if err := h.GetProfile(c); err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("upstream 404 not relayed, got %d", rec.Code)
	}
}

func TestProxy_RouteMapping(t *testing.T) {
	srv, got := fakeBackend(t, http.StatusOK, `{}`)
	client := newUpstreamClient(srv.URL)
	h := NewProxyHandler(client, client)

	cases := []struct {
		call       func(echo.Context) error
		method     string
		target     string
		wantMethod string
		wantPath   string
	}{
		{h.ListProfiles, http.MethodGet, "/users?page=2", http.MethodGet, "/profiles"},
		{h.UpdateProfile, http.MethodPost, "/user-update?user_id=1", http.MethodPost, "/profileUpdate"},
		{h.DeleteProfile, http.MethodDelete, "/delete-user?user_id=1", http.MethodDelete, "/profileDelete"},
		{h.GetData, http.MethodGet, "/data", http.MethodGet, "/info"},
	}
	for i, tc := range cases {
		c, rec := proxyContext(tc.method, tc.target, nil)
		if err := tc.call(c); err != nil {
			t.Fatalf("case %d: handler returned error: %v", i, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("case %d: expected 200, got %d", i, rec.Code)
		}
		up := (*got)[len(*got)-1]
		if up.Method != tc.wantMethod || up.Path != tc.wantPath {
			t.Fatalf("case %d: routed to %s %s, want %s %s", i, up.Method, up.Path, tc.wantMethod, tc.wantPath)
		}
	}
}

func TestProxy_BackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	h := NewProxyHandler(newUpstreamClient(srv.URL), nil)

	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	c, rec := proxyContext(http.MethodGet, "/user", nil)

	err := h.GetProfile(c)
	if err == nil {
		t.Fatal("expected error when backend is down")
	}
	e.HTTPErrorHandler(err, c)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"upstream unavailable"}`+"\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestProxy_BulkUpload_NoFile(t *testing.T) {
	srv, got := fakeBackend(t, http.StatusAccepted, `{}`)
	h := NewProxyHandler(newUpstreamClient(srv.URL), nil)

	body, contentType := registerForm(t, map[string]string{"note": "no file here"}, "")
	c, rec := proxyContext(http.MethodPost, "/upload", body)
	c.Request().Header.Set(echo.HeaderContentType, contentType)

	if err := h.BulkUpload(c); err != nil {
		t.Fatalf("BulkUpload returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec.Body.String() != `{"error":"No file uploaded"}`+"\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
	if len(*got) != 0 {
		t.Fatal("empty submission must not reach the backend")
	}
}

func TestProxy_BulkUpload_ForwardsMultipart(t *testing.T) {
	srv, got := fakeBackend(t, http.StatusAccepted, `{"message":"File uploaded. Processing started."}`)
	h := NewProxyHandler(newUpstreamClient(srv.URL), nil)

	var buf bytes.Buffer
	w := newMultipartFile(t, &buf, "uploaded_file", "people.csv", "name\nana\n")
	c, rec := proxyContext(http.MethodPost, "/upload", &buf)
	c.Request().Header.Set(echo.HeaderContentType, w)

	if err := h.BulkUpload(c); err != nil {
		t.Fatalf("BulkUpload returned error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(*got) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(*got))
	}
	up := (*got)[0]
	if up.Path != "/profileBulkUpload" {
		t.Fatalf("routed to %s", up.Path)
	}
	if !bytes.Contains(up.Body, []byte("people.csv")) {
		t.Fatal("multipart body not forwarded verbatim")
	}
}
