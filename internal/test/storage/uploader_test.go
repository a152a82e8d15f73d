package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-cms-backend/internal/storage"
)

func testTasks(names ...string) []storage.UploadTask {
	tasks := make([]storage.UploadTask, len(names))
	for i, name := range names {
		tag := "gal"
		if i == 0 {
			tag = "main"
		}
		tasks[i] = storage.UploadTask{
			Data:        []byte("image bytes"),
			ContentType: "image/jpeg",
			Filename:    name,
			Tag:         tag,
		}
	}
	return tasks
}

func TestUploadAllReturnsURLsInOrder(t *testing.T) {
	api := &fakeObjectAPI{}
	uploader := storage.NewUploader(newTestClient(api))

	urls, err := uploader.UploadAll(context.Background(), "projects", testTasks("a.jpg", "b.jpg", "c.jpg"))
	require.NoError(t, err)
	require.Len(t, urls, 3)

	assert.Contains(t, urls[0], "_main_")
	assert.True(t, strings.HasSuffix(urls[0], "_a.jpg"))
	assert.True(t, strings.HasSuffix(urls[1], "_b.jpg"))
	assert.True(t, strings.HasSuffix(urls[2], "_c.jpg"))
	for _, url := range urls {
		assert.True(t, strings.HasPrefix(url, testPrefix+"projects/"))
	}
	assert.Empty(t, api.removals)
}

func TestUploadAllEmptyTaskList(t *testing.T) {
	api := &fakeObjectAPI{}
	uploader := storage.NewUploader(newTestClient(api))

	urls, err := uploader.UploadAll(context.Background(), "projects", nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Zero(t, api.uploadCalls)
}

func TestUploadAllRollsBackOnFailure(t *testing.T) {
	// Third file fails every attempt; the two already uploaded must be
	// removed in one batch before the error surfaces.
	api := &fakeObjectAPI{failKey: "_c.jpg"}
	uploader := storage.NewUploader(newTestClient(api))

	urls, err := uploader.UploadAll(context.Background(), "projects", testTasks("a.jpg", "b.jpg", "c.jpg", "d.jpg"))
	require.Error(t, err)
	assert.Nil(t, urls)
	assert.Contains(t, err.Error(), "c.jpg")

	require.Len(t, api.removals, 1)
	require.Len(t, api.removals[0], 2)
	assert.True(t, strings.HasSuffix(api.removals[0][0], "_a.jpg"))
	assert.True(t, strings.HasSuffix(api.removals[0][1], "_b.jpg"))
}

func TestUploadAllFirstTaskFailureSkipsRollback(t *testing.T) {
	api := &fakeObjectAPI{failKey: "_a.jpg"}
	uploader := storage.NewUploader(newTestClient(api))

	_, err := uploader.UploadAll(context.Background(), "projects", testTasks("a.jpg", "b.jpg"))
	require.Error(t, err)
	assert.Empty(t, api.removals)
}

func TestUploadAllSharedBatchAcrossRoles(t *testing.T) {
	// A gallery failure must roll back the already-uploaded main image
	// since both belong to the same request.
	api := &fakeObjectAPI{failKey: "_gallery2.jpg"}
	uploader := storage.NewUploader(newTestClient(api))

	_, err := uploader.UploadAll(context.Background(), "projects",
		testTasks("cover.jpg", "gallery1.jpg", "gallery2.jpg"))
	require.Error(t, err)

	require.Len(t, api.removals, 1)
	require.Len(t, api.removals[0], 2)
	assert.Contains(t, api.removals[0][0], "_main_")
}
