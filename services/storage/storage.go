// Package storage uploads chat image attachments so persisted turns carry
// a URL instead of raw bytes.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// AttachmentStore saves an uploaded attachment and returns its public URL.
type AttachmentStore interface {
	Upload(ctx context.Context, data []byte, mimeType string) (string, error)
}

// CloudinaryStore implements AttachmentStore on Cloudinary.
type CloudinaryStore struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{client: cld, folder: "chat-attachments"}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, mimeType string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("storage: attachment upload failed: %w", err)
	}
	return resp.SecureURL, nil
}
