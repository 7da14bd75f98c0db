package service

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize is the largest recipe image accepted, in bytes
const MaxImageSize = 5 << 20

// ImageService stores recipe images in the configured object store
type ImageService struct {
	store ObjectStore
}

// Ensure ImageService implements IImageService
var _ IImageService = (*ImageService)(nil)

// NewImageService creates an ImageService. A nil store makes every upload
// fail with ErrStorageDisabled.
func NewImageService(store ObjectStore) *ImageService {
	return &ImageService{store: store}
}

// Upload validates an image and stores it under recipes/<user>/<uuid><ext>
func (s *ImageService) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if s.store == nil {
		return "", ErrStorageDisabled
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	// Trust the bytes over the client-supplied header
	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, sniffed)
	}
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = sniffed
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	key := fmt.Sprintf("recipes/%s/%s%s", userID, uuid.NewString(), ext)
	url, err := s.store.PutObject(ctx, key, data, contentType)
	if err != nil {
		log.Printf("[ImageService] Failed to upload %s: %v", key, err)
		return "", err
	}

	log.Printf("[ImageService] Uploaded %s (%d bytes)", key, len(data))
	return url, nil
}
