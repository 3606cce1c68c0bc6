package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
	"blogsphere/internal/model"
)

func TestPhotoService_Upload(t *testing.T) {
	owner := uuid.New()

	t.Run("stores bytes then record", func(t *testing.T) {
		store := newFakeStorage()
		repo := new(MockPhotoRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Photo")).Return(nil)

		photo, err := NewPhotoService(repo, new(MockUserRepository), store, logger.Nop()).Upload(context.Background(), owner, Upload{
			FileName: "cat.png", ContentType: "image/png", Size: 4, Body: strings.NewReader("meow"),
		})

		require.NoError(t, err)
		assert.Equal(t, model.PhotoObjectKey(owner, photo.ID), photo.ObjectKey)
		assert.Equal(t, []byte("meow"), store.objects[photo.ObjectKey])
	})

	t.Run("empty upload rejected", func(t *testing.T) {
		_, err := NewPhotoService(new(MockPhotoRepository), new(MockUserRepository), newFakeStorage(), logger.Nop()).
			Upload(context.Background(), owner, Upload{FileName: "x", Size: 0, Body: strings.NewReader("")})
		assert.ErrorIs(t, err, apperrors.ErrEmptyUpload)
	})

	t.Run("record failure removes stored object", func(t *testing.T) {
		store := newFakeStorage()
		repo := new(MockPhotoRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := NewPhotoService(repo, new(MockUserRepository), store, logger.Nop()).Upload(context.Background(), owner, Upload{
			FileName: "cat.png", Size: 4, Body: strings.NewReader("meow"),
		})

		assert.Error(t, err)
		assert.Len(t, store.removed, 1)
		assert.Empty(t, store.objects)
	})

	t.Run("storage failure skips record", func(t *testing.T) {
		store := newFakeStorage()
		store.putErr = errors.New("bucket gone")
		repo := new(MockPhotoRepository)

		_, err := NewPhotoService(repo, new(MockUserRepository), store, logger.Nop()).Upload(context.Background(), owner, Upload{
			FileName: "cat.png", Size: 4, Body: strings.NewReader("meow"),
		})

		assert.ErrorIs(t, err, store.putErr)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPhotoService_Open(t *testing.T) {
	owner, id := uuid.New(), uuid.New()
	key := model.PhotoObjectKey(owner, id)
	store := newFakeStorage()
	store.objects[key] = []byte("bytes")
	repo := new(MockPhotoRepository)
	repo.On("FindByID", mock.Anything, id).Return(&model.Photo{ID: id, OwnerID: owner, ObjectKey: key}, nil)

	photo, body, err := NewPhotoService(repo, new(MockUserRepository), store, logger.Nop()).Open(context.Background(), id)
	require.NoError(t, err)
	defer body.Close()

	b, _ := io.ReadAll(body)
	assert.Equal(t, "bytes", string(b))
	assert.Equal(t, id, photo.ID)
}

func TestPhotoService_Delete(t *testing.T) {
	owner, id := uuid.New(), uuid.New()
	key := model.PhotoObjectKey(owner, id)

	t.Run("owner deletes record and object", func(t *testing.T) {
		store := newFakeStorage()
		store.objects[key] = []byte("x")
		repo := new(MockPhotoRepository)
		repo.On("FindByID", mock.Anything, id).Return(&model.Photo{ID: id, OwnerID: owner, ObjectKey: key}, nil)
		repo.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, NewPhotoService(repo, new(MockUserRepository), store, logger.Nop()).Delete(context.Background(), owner, id))
		assert.Equal(t, []string{key}, store.removed)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo := new(MockPhotoRepository)
		repo.On("FindByID", mock.Anything, id).Return(&model.Photo{ID: id, OwnerID: owner, ObjectKey: key}, nil)

		err := NewPhotoService(repo, new(MockUserRepository), newFakeStorage(), logger.Nop()).Delete(context.Background(), uuid.New(), id)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
