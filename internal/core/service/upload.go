package service

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

// SniffImages rejects any file whose content is not an image and replaces
// the client-declared content type with the detected one.
func SniffImages(files []ports.Upload) error {
	for i := range files {
		mt := mimetype.Detect(files[i].Data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return domain.NewValidationError(map[string]string{
				"files": fmt.Sprintf("%s is not an image (detected %s)", files[i].Filename, mt.String()),
			})
		}
		files[i].ContentType = mt.String()
	}
	return nil
}
