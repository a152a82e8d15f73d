package storage

import (
	"context"
	"fmt"

	"estate-cms-backend/internal/logger"
)

// UploadTask is one file to store: raw bytes plus the metadata needed
// to build its key.
type UploadTask struct {
	Data        []byte
	ContentType string
	Filename    string
	Tag         string // role within the request: "main", "gal", "icon"
}

// Uploader sequences the uploads of one request. All tasks of a
// request share one rollback batch: if any upload fails, everything
// stored earlier in the same request is deleted before the error is
// returned.
type Uploader struct {
	client *Client
}

func NewUploader(client *Client) *Uploader {
	return &Uploader{client: client}
}

// Client returns the underlying store client.
func (u *Uploader) Client() *Client {
	return u.client
}

// UploadAll stores every task under prefix and returns the public URLs
// in task order.
func (u *Uploader) UploadAll(ctx context.Context, prefix string, tasks []UploadTask) ([]string, error) {
	urls := make([]string, 0, len(tasks))
	var batch []string // request-scoped rollback bookkeeping

	for _, task := range tasks {
		key := ObjectKey(prefix, task.Tag, task.Filename)
		url, err := u.client.Upload(ctx, key, task.Data, task.ContentType)
		if err != nil {
			if len(batch) > 0 {
				logger.Warn("rolling back uploads",
					"count", len(batch), "failed_file", task.Filename)
				u.client.DeleteMany(batch)
			}
			return nil, fmt.Errorf("upload %s: %w", task.Filename, err)
		}
		urls = append(urls, url)
		batch = append(batch, url)
	}

	return urls, nil
}
