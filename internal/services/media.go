package services

import (
	"context"
	"sync"

	"estate-cms-backend/internal/logger"
	"estate-cms-backend/internal/storage"
)

// MediaCoordinator sequences object-store uploads with the database
// write of one request so store and database state never diverge:
// uploads happen strictly before the write, a failed write rolls back
// this request's uploads, and files orphaned by a committed write are
// deleted in the background after the commit.
type MediaCoordinator struct {
	uploader *storage.Uploader
	store    *storage.Client
	wg       sync.WaitGroup
}

func NewMediaCoordinator(uploader *storage.Uploader) *MediaCoordinator {
	return &MediaCoordinator{
		uploader: uploader,
		store:    uploader.Client(),
	}
}

// Create uploads tasks and then persists the entity via persist, which
// receives the public URLs in task order. A failed persist rolls back
// every URL uploaded for this request, since nothing references them.
func (m *MediaCoordinator) Create(ctx context.Context, prefix string, tasks []storage.UploadTask,
	persist func(ctx context.Context, urls []string) error) ([]string, error) {

	urls, err := m.uploader.UploadAll(ctx, prefix, tasks)
	if err != nil {
		return nil, err
	}

	if err := persist(ctx, urls); err != nil {
		if len(urls) > 0 {
			logger.Warn("rolling back uploads after failed write", "count", len(urls))
			m.store.DeleteMany(urls)
		}
		return nil, err
	}

	return urls, nil
}

// Update uploads tasks, persists, and schedules the orphans reported
// by persist for background deletion once the write has committed.
// Only this request's uploads are rolled back when persist fails; the
// previously stored files stay untouched because nothing committed.
func (m *MediaCoordinator) Update(ctx context.Context, prefix string, tasks []storage.UploadTask,
	persist func(ctx context.Context, urls []string) (orphans []string, err error)) ([]string, error) {

	urls, err := m.uploader.UploadAll(ctx, prefix, tasks)
	if err != nil {
		return nil, err
	}

	orphans, err := persist(ctx, urls)
	if err != nil {
		if len(urls) > 0 {
			logger.Warn("rolling back uploads after failed write", "count", len(urls))
			m.store.DeleteMany(urls)
		}
		return nil, err
	}

	m.CleanupAsync(orphans)
	return urls, nil
}

// Delete persists the entity removal and schedules its media for
// background deletion. Nothing is deleted from the store if the
// database write fails.
func (m *MediaCoordinator) Delete(ctx context.Context,
	persist func(ctx context.Context) (orphans []string, err error)) error {

	orphans, err := persist(ctx)
	if err != nil {
		return err
	}

	m.CleanupAsync(orphans)
	return nil
}

// CleanupAsync deletes URLs in the background without blocking the
// response. Failures leave harmless orphans and are only logged.
func (m *MediaCoordinator) CleanupAsync(urls []string) {
	if len(urls) == 0 {
		return
	}
	m.wg.Add(1)
	log := logger.With("count", len(urls))
	go func() {
		defer m.wg.Done()
		m.store.DeleteMany(urls)
		log.Debug("background cleanup finished")
	}()
}

// Shutdown waits for pending background cleanups, giving up when ctx
// expires. Skipped cleanups leave orphans, not corruption.
func (m *MediaCoordinator) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("cleanup skipped", "reason", ctx.Err())
	}
}

// MergeGallery computes the next gallery for an update: the kept
// subset of the existing gallery, in client order, followed by the
// newly uploaded URLs. Existing URLs missing from keep become orphans.
// URLs in keep that were never part of the gallery are ignored.
func MergeGallery(existing, keep, uploaded []string) (gallery, orphans []string) {
	existingSet := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		existingSet[u] = struct{}{}
	}

	kept := make(map[string]struct{}, len(keep))
	gallery = make([]string, 0, len(keep)+len(uploaded))
	for _, u := range keep {
		if _, ok := existingSet[u]; !ok {
			continue
		}
		if _, dup := kept[u]; dup {
			continue
		}
		kept[u] = struct{}{}
		gallery = append(gallery, u)
	}

	for _, u := range existing {
		if _, ok := kept[u]; !ok {
			orphans = append(orphans, u)
		}
	}

	gallery = append(gallery, uploaded...)
	return gallery, orphans
}
