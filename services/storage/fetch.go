package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"voyago/models"
)

// maxFetchBytes caps how much image data is pulled back for the model.
const maxFetchBytes = 8 << 20

// AttachmentFetcher resolves a previously uploaded attachment URL into the
// bytes the generative client sends as an image part.
type AttachmentFetcher interface {
	Fetch(ctx context.Context, url string) (*models.ImageAttachment, error)
}

// HTTPAttachmentFetcher implements AttachmentFetcher over plain HTTP.
type HTTPAttachmentFetcher struct {
	client *http.Client
}

func NewHTTPAttachmentFetcher() *HTTPAttachmentFetcher {
	return &HTTPAttachmentFetcher{client: &http.Client{Timeout: 15 * time.Second}}
}

// Fetch downloads the attachment and fills in its bytes and MIME type. The
// MIME type comes from the response header, falling back to sniffing the
// body when the header is missing or generic.
func (f *HTTPAttachmentFetcher) Fetch(ctx context.Context, url string) (*models.ImageAttachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: attachment fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage: attachment fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("storage: attachment read failed: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("storage: attachment at %s is empty", url)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	return &models.ImageAttachment{URL: url, MIMEType: mimeType, Data: data}, nil
}
