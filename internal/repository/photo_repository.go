package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogsphere/internal/model"
)

// PhotoRepository defines photo metadata persistence operations.
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Photo, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error)
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository.
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Photo{}).Error
}

func (r *photoRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	var photo model.Photo
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Photo, error) {
	var photos []model.Photo
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&photos).Error
	return photos, err
}
