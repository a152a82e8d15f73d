package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	storage_go "github.com/supabase-community/storage-go"

	"estate-cms-backend/internal/logger"
)

const maxUploadAttempts = 3

// ObjectAPI is the slice of the Supabase storage API the client needs.
// *storage_go.Client satisfies it; tests substitute a fake.
type ObjectAPI interface {
	UploadFile(bucket, path string, data io.Reader, options ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	RemoveFile(bucket string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// Client wraps the object store for one bucket. Uploads are on the
// critical path and retry; deletes are best-effort cleanup and never
// surface an error.
type Client struct {
	api         ObjectAPI
	bucket      string
	publicBase  string
	retryDelays []time.Duration
}

func NewClient(api ObjectAPI, supabaseURL, bucket string) *Client {
	base := strings.TrimSuffix(supabaseURL, "/")
	return &Client{
		api:         api,
		bucket:      bucket,
		publicBase:  fmt.Sprintf("%s/storage/v1/object/public/%s/", base, bucket),
		retryDelays: []time.Duration{2 * time.Second, 4 * time.Second},
	}
}

// WithRetryDelays overrides the backoff schedule between upload
// attempts. Used by tests to avoid real sleeps.
func (c *Client) WithRetryDelays(delays []time.Duration) *Client {
	c.retryDelays = delays
	return c
}

// Upload compresses data, writes it under key with overwrite allowed,
// and returns the public URL. Failures are retried with exponential
// backoff; after the attempts are exhausted the last error is
// propagated.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	body := Compress(data)

	var lastErr error
	for attempt := 0; attempt < maxUploadAttempts; attempt++ {
		if attempt > 0 {
			delay := c.retryDelays[min(attempt-1, len(c.retryDelays)-1)]
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		upsert := true
		ct := contentType
		_, err := c.api.UploadFile(c.bucket, key, bytes.NewReader(body), storage_go.FileOptions{
			ContentType: &ct,
			Upsert:      &upsert,
		})
		if err == nil {
			return c.PublicURL(key), nil
		}
		lastErr = err
		logger.Warn("object upload attempt failed",
			"key", key, "attempt", attempt+1, "error", err)
	}

	return "", fmt.Errorf("upload %s after %d attempts: %w", key, maxUploadAttempts, lastErr)
}

// PublicURL returns the publicly resolvable URL for a storage key.
func (c *Client) PublicURL(key string) string {
	return c.publicBase + key
}

// keyFromURL strips the public bucket prefix. URLs that do not belong
// to this bucket yield "".
func (c *Client) keyFromURL(url string) string {
	if !strings.HasPrefix(url, c.publicBase) {
		return ""
	}
	return strings.TrimPrefix(url, c.publicBase)
}

// DeleteOne removes a single object by public URL, best-effort.
func (c *Client) DeleteOne(url string) {
	c.DeleteMany([]string{url})
}

// DeleteMany removes objects by public URL in one batch call. URLs
// outside the configured bucket are skipped and store failures are
// logged, never returned; a failed delete leaves a harmless orphan.
func (c *Client) DeleteMany(urls []string) {
	keys := make([]string, 0, len(urls))
	for _, u := range urls {
		if key := c.keyFromURL(u); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	if _, err := c.api.RemoveFile(c.bucket, keys); err != nil {
		logger.Warn("object delete failed", "count", len(keys), "error", err)
	}
}
