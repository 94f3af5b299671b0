package profile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

// BulkHandler accepts bulk-import uploads. The 202 is returned as soon as
// the file is persisted and the job is on the queue; processing happens in
// the worker.
type BulkHandler struct {
	imports ports.ImportService
}

func NewBulkHandler(imports ports.ImportService) *BulkHandler {
	return &BulkHandler{imports: imports}
}

// Upload handles POST /profileBulkUpload (multipart form).
func (h *BulkHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("uploaded_file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = h.imports.Submit(c.Request().Context(), ports.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFileFormat) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid file format"})
		}
		return err
	}

	return c.JSON(http.StatusAccepted, map[string]string{"message": "File uploaded. Processing started."})
}
