package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

// UploadLimits bounds what a multipart upload may carry.
type UploadLimits struct {
	MaxFiles int
	MaxBytes int64
}

// readUploads loads every file posted under field into memory.
func readUploads(c echo.Context, field string, limits UploadLimits) ([]ports.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "expected a multipart form")
	}

	headers := form.File[field]
	if len(headers) == 0 {
		return nil, domain.NewValidationError(map[string]string{field: field + " is required"})
	}
	if limits.MaxFiles > 0 && len(headers) > limits.MaxFiles {
		return nil, domain.NewValidationError(map[string]string{field: fmt.Sprintf("at most %d files per upload", limits.MaxFiles)})
	}

	uploads := make([]ports.Upload, 0, len(headers))
	for _, fh := range headers {
		if limits.MaxBytes > 0 && fh.Size > limits.MaxBytes {
			return nil, domain.NewValidationError(map[string]string{field: fmt.Sprintf("%s exceeds %d bytes", fh.Filename, limits.MaxBytes)})
		}
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, ports.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}
	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}
