package gateway

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/profilehub/user-platform/internal/api/metrics"
	"github.com/profilehub/user-platform/internal/infrastructure/upstream"
)

// ProxyHandler relays authenticated requests to the internal services,
// forwarding query, body, and Authorization header unchanged and returning
// the upstream status and body verbatim. The gateway never re-interprets
// backend errors.
type ProxyHandler struct {
	profile *upstream.Client
	data    *upstream.Client
}

func NewProxyHandler(profile, data *upstream.Client) *ProxyHandler {
	return &ProxyHandler{profile: profile, data: data}
}

// GetProfile handles GET /user → profile service GET /profile.
func (h *ProxyHandler) GetProfile(c echo.Context) error {
	return h.forward(c, h.profile, http.MethodGet, "/profile")
}

// ListProfiles handles GET /users → profile service GET /profiles.
func (h *ProxyHandler) ListProfiles(c echo.Context) error {
	return h.forward(c, h.profile, http.MethodGet, "/profiles")
}

// UpdateProfile handles POST /user-update → profile service POST /profileUpdate.
func (h *ProxyHandler) UpdateProfile(c echo.Context) error {
	return h.forward(c, h.profile, http.MethodPost, "/profileUpdate")
}

// DeleteProfile handles DELETE /delete-user → profile service DELETE /profileDelete.
func (h *ProxyHandler) DeleteProfile(c echo.Context) error {
	return h.forward(c, h.profile, http.MethodDelete, "/profileDelete")
}

// GetData handles GET /data → data service GET /info.
func (h *ProxyHandler) GetData(c echo.Context) error {
	return h.forward(c, h.data, http.MethodGet, "/info")
}

// BulkUpload handles POST /upload → profile service POST /profileBulkUpload.
// The file's presence is checked here so an empty submission never costs an
// upstream call; format validation belongs to the profile service.
func (h *ProxyHandler) BulkUpload(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	probe, err := http.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	probe.Header = c.Request().Header.Clone()
	if _, _, err := probe.FormFile("uploaded_file"); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}

	return h.relay(c, h.profile, upstream.Request{
		Method:        http.MethodPost,
		Path:          "/profileBulkUpload",
		Authorization: c.Request().Header.Get("Authorization"),
		ContentType:   c.Request().Header.Get("Content-Type"),
		Body:          body,
	})
}

func (h *ProxyHandler) forward(c echo.Context, client *upstream.Client, method, path string) error {
	var body []byte
	if c.Request().Body != nil {
		b, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		body = b
	}

	return h.relay(c, client, upstream.Request{
		Method:        method,
		Path:          path,
		RawQuery:      c.Request().URL.RawQuery,
		Authorization: c.Request().Header.Get("Authorization"),
		ContentType:   c.Request().Header.Get("Content-Type"),
		Body:          body,
	})
}

func (h *ProxyHandler) relay(c echo.Context, client *upstream.Client, req upstream.Request) error {
	start := time.Now()
	resp, err := client.Do(c.Request().Context(), req)
	metrics.ProxyUpstreamDuration.WithLabelValues(c.Path()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues(c.Path(), "unavailable").Inc()
		return err
	}
	metrics.ProxyRequestsTotal.WithLabelValues(c.Path(), strconv.Itoa(resp.Status)).Inc()

	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.Status, contentType, resp.Body)
}
