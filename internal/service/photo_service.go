package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
	"blogsphere/internal/model"
	"blogsphere/internal/repository"
)

// ObjectStorage stores photo bytes by key.
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// Upload is an incoming photo file.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Caption     string
	Body        io.Reader
}

// PhotoService manages user photo galleries.
type PhotoService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, up Upload) (*model.Photo, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error)
	Open(ctx context.Context, id uuid.UUID) (*model.Photo, io.ReadCloser, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type photoService struct {
	repo     repository.PhotoRepository
	userRepo repository.UserRepository
	storage  ObjectStorage
	log      *logger.Logger
}

// NewPhotoService builds a PhotoService.
func NewPhotoService(repo repository.PhotoRepository, userRepo repository.UserRepository, storage ObjectStorage, log *logger.Logger) PhotoService {
	return &photoService{repo: repo, userRepo: userRepo, storage: storage, log: log}
}

// Upload writes the bytes to object storage first, then records the photo.
func (s *photoService) Upload(ctx context.Context, ownerID uuid.UUID, up Upload) (*model.Photo, error) {
	if up.Size <= 0 || up.Body == nil {
		return nil, apperrors.ErrEmptyUpload
	}
	if up.ContentType == "" {
		up.ContentType = "application/octet-stream"
	}

	photo := &model.Photo{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Caption:     up.Caption,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		Size:        up.Size,
	}
	photo.ObjectKey = model.PhotoObjectKey(ownerID, photo.ID)

	if err := s.storage.Put(ctx, photo.ObjectKey, up.Body, up.Size, up.ContentType); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		if rmErr := s.storage.Remove(ctx, photo.ObjectKey); rmErr != nil {
			s.log.Warn("orphaned photo object", "key", photo.ObjectKey, "err", rmErr)
		}
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return photo, nil
}

func (s *photoService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error) {
	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	photos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

func (s *photoService) find(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return photo, nil
}

// Open returns the photo metadata and a reader over its bytes. The caller closes the reader.
func (s *photoService) Open(ctx context.Context, id uuid.UUID) (*model.Photo, io.ReadCloser, error) {
	photo, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.storage.Get(ctx, photo.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("read photo: %w", err)
	}
	return photo, body, nil
}

func (s *photoService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	photo, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !photo.OwnedBy(actorID) {
		return apperrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if err := s.storage.Remove(ctx, photo.ObjectKey); err != nil {
		s.log.Warn("remove photo object", "key", photo.ObjectKey, "err", err)
	}
	return nil
}
