package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
	"blogsphere/internal/model"
	"blogsphere/internal/repository"
)

// CommentService manages comments and one level of replies.
type CommentService interface {
	List(ctx context.Context, blogID uuid.UUID) ([]model.Comment, error)
	Add(ctx context.Context, actorID, blogID uuid.UUID, content string) (*model.Comment, error)
	Reply(ctx context.Context, actorID, parentID uuid.UUID, content string) (*model.Comment, error)
	Update(ctx context.Context, actorID, id uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type commentService struct {
	repo     repository.CommentRepository
	blogRepo repository.BlogRepository
	notifier NotificationService
	log      *logger.Logger
}

// NewCommentService builds a CommentService.
func NewCommentService(repo repository.CommentRepository, blogRepo repository.BlogRepository, notifier NotificationService, log *logger.Logger) CommentService {
	return &commentService{repo: repo, blogRepo: blogRepo, notifier: notifier, log: log}
}

func (s *commentService) findBlog(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return blog, nil
}

func (s *commentService) find(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, blogID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.findBlog(ctx, blogID); err != nil {
		return nil, err
	}
	comments, err := s.repo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Add posts a top-level comment and notifies the blog author.
func (s *commentService) Add(ctx context.Context, actorID, blogID uuid.UUID, content string) (*model.Comment, error) {
	blog, err := s.findBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{BlogID: blogID, AuthorID: actorID, Content: content}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.notify(ctx, Event{
		Type:        model.NotificationComment,
		RecipientID: blog.AuthorID,
		ActorID:     actorID,
		BlogID:      &blog.ID,
		CommentID:   &comment.ID,
		BlogTitle:   blog.Title,
	})
	return comment, nil
}

// Reply answers a comment. Replies to replies attach to the same top-level comment.
func (s *commentService) Reply(ctx context.Context, actorID, parentID uuid.UUID, content string) (*model.Comment, error) {
	parent, err := s.find(ctx, parentID)
	if err != nil {
		return nil, err
	}

	rootID := parent.ID
	if parent.ParentID != nil {
		rootID = *parent.ParentID
	}

	reply := &model.Comment{
		BlogID:   parent.BlogID,
		AuthorID: actorID,
		ParentID: &rootID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	s.notify(ctx, Event{
		Type:        model.NotificationReply,
		RecipientID: parent.AuthorID,
		ActorID:     actorID,
		BlogID:      &parent.BlogID,
		CommentID:   &reply.ID,
	})
	return reply, nil
}

func (s *commentService) notify(ctx context.Context, ev Event) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.Warn("notification failed", "type", ev.Type, "recipient", ev.RecipientID, "err", err)
	}
}

func (s *commentService) Update(ctx context.Context, actorID, id uuid.UUID, content string) (*model.Comment, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !comment.OwnedBy(actorID) {
		return nil, apperrors.ErrForbidden
	}
	comment.Content = content
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	comment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !comment.OwnedBy(actorID) {
		return apperrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
