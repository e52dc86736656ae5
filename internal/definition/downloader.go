package definition

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"resty.dev/v3"
)

//go:generate mockgen -source=downloader.go -destination=../mocks/definition/mock_downloader.go -package=mock_definition Downloader

// Downloader fetches the definition page of a word.
type Downloader interface {
	Download(ctx context.Context, url string) (string, error)
}

// HTTPDownloader issues a single blocking GET per definition page.
type HTTPDownloader struct {
	httpClient *resty.Client
}

// NewHTTPDownloader creates a downloader. A zero timeout keeps the transport defaults.
func NewHTTPDownloader(userAgent string, timeout time.Duration) *HTTPDownloader {
	client := resty.New()
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPDownloader{
		httpClient: client,
	}
}

func (d *HTTPDownloader) Close() error {
	return d.httpClient.Close()
}

func (d *HTTPDownloader) Download(ctx context.Context, url string) (string, error) {
	response, err := d.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), url)
	}
	if contentType := response.Header().Get("Content-Type"); !isText(contentType) {
		return "", fmt.Errorf("unexpected content type %q: %s", contentType, url)
	}
	return response.String(), nil
}

// isText accepts text/* media types. A missing header is treated as text.
func isText(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/")
}
