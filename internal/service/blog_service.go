package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogsphere/internal/cache"
	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/model"
	"blogsphere/internal/repository"
)

const blogCacheTTL = 2 * time.Minute

func blogCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("blog:%s", id)
}

// cachedBlog keeps the raw tag column, which model.Blog hides from JSON.
type cachedBlog struct {
	model.Blog
	RawTags string `json:"rawTags"`
}

// BlogInput holds the fields of a new blog.
type BlogInput struct {
	Title      string
	Content    string
	CoverImage string
	Tags       []string
}

// BlogPatch holds the optional fields of a blog update.
type BlogPatch struct {
	Title      *string
	Content    *string
	CoverImage *string
	Tags       []string
}

// BlogService manages blog posts.
type BlogService interface {
	Create(ctx context.Context, authorID uuid.UUID, in BlogInput) (*model.Blog, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	List(ctx context.Context, p Pagination) ([]model.Blog, int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, p Pagination) ([]model.Blog, int64, error)
	Update(ctx context.Context, actorID, id uuid.UUID, patch BlogPatch) (*model.Blog, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type blogService struct {
	repo     repository.BlogRepository
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewBlogService builds a BlogService.
func NewBlogService(repo repository.BlogRepository, userRepo repository.UserRepository, cache *cache.Client) BlogService {
	return &blogService{repo: repo, userRepo: userRepo, cache: cache}
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, in BlogInput) (*model.Blog, error) {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	blog := &model.Blog{
		AuthorID:   authorID,
		Title:      strings.TrimSpace(in.Title),
		Content:    in.Content,
		CoverImage: in.CoverImage,
	}
	blog.SetTags(in.Tags)

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	blog.Author = author
	return blog, nil
}

func (s *blogService) Get(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	var cached cachedBlog
	if s.cache.GetJSON(ctx, blogCacheKey(id), &cached) {
		blog := cached.Blog
		blog.Tags = cached.RawTags
		return &blog, nil
	}
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, blogCacheKey(id), cachedBlog{Blog: *blog, RawTags: blog.Tags}, blogCacheTTL)
	return blog, nil
}

func (s *blogService) find(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return blog, nil
}

func (s *blogService) List(ctx context.Context, p Pagination) ([]model.Blog, int64, error) {
	blogs, total, err := s.repo.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, total, nil
}

func (s *blogService) ListByAuthor(ctx context.Context, authorID uuid.UUID, p Pagination) ([]model.Blog, int64, error) {
	blogs, total, err := s.repo.ListByAuthor(ctx, authorID, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs by author: %w", err)
	}
	return blogs, total, nil
}

// Update changes a blog the actor owns.
func (s *blogService) Update(ctx context.Context, actorID, id uuid.UUID, patch BlogPatch) (*model.Blog, error) {
	blog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !blog.OwnedBy(actorID) {
		return nil, apperrors.ErrForbidden
	}

	if patch.Title != nil {
		blog.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		blog.Content = *patch.Content
	}
	if patch.CoverImage != nil {
		blog.CoverImage = *patch.CoverImage
	}
	if patch.Tags != nil {
		blog.SetTags(patch.Tags)
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	_ = s.cache.Delete(ctx, blogCacheKey(id))
	return blog, nil
}

// Delete removes a blog the actor owns together with its comments.
func (s *blogService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	blog, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !blog.OwnedBy(actorID) {
		return apperrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBlogNotFound
		}
		return fmt.Errorf("delete blog: %w", err)
	}
	_ = s.cache.Delete(ctx, blogCacheKey(id))
	return nil
}
