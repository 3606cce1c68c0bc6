package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogsphere/internal/model"
)

// BlogRepository defines blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	List(ctx context.Context, offset, limit int) ([]model.Blog, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]model.Blog, int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create creates a new blog.
func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Omit("Author").Create(blog).Error
}

// Update saves editable blog columns.
func (r *blogRepository) Update(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Model(blog).
		Select("title", "content", "cover_image", "tags").
		Updates(blog).Error
}

// Delete removes a blog together with its comments.
func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Blog{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindByID finds a blog by ID with its author.
func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// List returns a page of blogs, newest first, and the total count.
func (r *blogRepository) List(ctx context.Context, offset, limit int) ([]model.Blog, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&model.Blog{}), offset, limit)
}

// ListByAuthor returns a page of one author's blogs, newest first.
func (r *blogRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, offset, limit int) ([]model.Blog, int64, error) {
	return r.page(r.db.WithContext(ctx).Model(&model.Blog{}).Where("author_id = ?", authorID), offset, limit)
}

func (r *blogRepository) page(q *gorm.DB, offset, limit int) ([]model.Blog, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var blogs []model.Blog
	if err := q.Preload("Author").Order("created_at DESC").Offset(offset).Limit(limit).Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}
