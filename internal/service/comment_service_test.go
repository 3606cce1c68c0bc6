package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
	"blogsphere/internal/model"
)

func TestCommentService_Add_NotifiesBlogAuthor(t *testing.T) {
	author, commenter := uuid.New(), uuid.New()
	blogID := uuid.New()

	blogs := new(MockBlogRepository)
	blogs.On("FindByID", mock.Anything, blogID).Return(&model.Blog{ID: blogID, AuthorID: author, Title: "Go tips"}, nil)
	comments := new(MockCommentRepository)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
	notifier := new(MockNotificationService)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ev Event) bool {
		return ev.Type == model.NotificationComment && ev.RecipientID == author && ev.ActorID == commenter && ev.BlogTitle == "Go tips"
	})).Return(nil)

	c, err := NewCommentService(comments, blogs, notifier, logger.Nop()).Add(context.Background(), commenter, blogID, "nice")

	require.NoError(t, err)
	assert.Equal(t, blogID, c.BlogID)
	assert.Nil(t, c.ParentID)
	notifier.AssertExpectations(t)
}

func TestCommentService_Add_NotificationFailureIsNotFatal(t *testing.T) {
	blogID := uuid.New()
	blogs := new(MockBlogRepository)
	blogs.On("FindByID", mock.Anything, blogID).Return(&model.Blog{ID: blogID, AuthorID: uuid.New()}, nil)
	comments := new(MockCommentRepository)
	comments.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier := new(MockNotificationService)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := NewCommentService(comments, blogs, notifier, logger.Nop()).Add(context.Background(), uuid.New(), blogID, "x")
	assert.NoError(t, err)
}

func TestCommentService_Add_UnknownBlog(t *testing.T) {
	blogID := uuid.New()
	blogs := new(MockBlogRepository)
	blogs.On("FindByID", mock.Anything, blogID).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewCommentService(new(MockCommentRepository), blogs, new(MockNotificationService), logger.Nop()).
		Add(context.Background(), uuid.New(), blogID, "x")
	assert.ErrorIs(t, err, apperrors.ErrBlogNotFound)
}

func TestCommentService_Reply_AttachesToTopLevel(t *testing.T) {
	root := uuid.New()
	blogID := uuid.New()
	replyAuthor := uuid.New()
	nested := &model.Comment{ID: uuid.New(), BlogID: blogID, AuthorID: replyAuthor, ParentID: &root}

	comments := new(MockCommentRepository)
	comments.On("FindByID", mock.Anything, nested.ID).Return(nested, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
		return c.ParentID != nil && *c.ParentID == root && c.BlogID == blogID
	})).Return(nil)
	notifier := new(MockNotificationService)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(ev Event) bool {
		return ev.Type == model.NotificationReply && ev.RecipientID == replyAuthor
	})).Return(nil)

	_, err := NewCommentService(comments, new(MockBlogRepository), notifier, logger.Nop()).
		Reply(context.Background(), uuid.New(), nested.ID, "agreed")

	require.NoError(t, err)
	comments.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCommentService_UpdateDelete_Ownership(t *testing.T) {
	owner := uuid.New()
	id := uuid.New()
	newRepo := func() *MockCommentRepository {
		r := new(MockCommentRepository)
		r.On("FindByID", mock.Anything, id).Return(&model.Comment{ID: id, AuthorID: owner, Content: "old"}, nil)
		return r
	}

	t.Run("update by stranger", func(t *testing.T) {
		svc := NewCommentService(newRepo(), new(MockBlogRepository), new(MockNotificationService), logger.Nop())
		_, err := svc.Update(context.Background(), uuid.New(), id, "hijack")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("update by owner", func(t *testing.T) {
		repo := newRepo()
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)
		svc := NewCommentService(repo, new(MockBlogRepository), new(MockNotificationService), logger.Nop())

		c, err := svc.Update(context.Background(), owner, id, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", c.Content)
	})

	t.Run("delete by stranger", func(t *testing.T) {
		svc := NewCommentService(newRepo(), new(MockBlogRepository), new(MockNotificationService), logger.Nop())
		assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New(), id), apperrors.ErrForbidden)
	})

	t.Run("delete by owner", func(t *testing.T) {
		repo := newRepo()
		repo.On("Delete", mock.Anything, id).Return(nil)
		svc := NewCommentService(repo, new(MockBlogRepository), new(MockNotificationService), logger.Nop())
		assert.NoError(t, svc.Delete(context.Background(), owner, id))
	})
}
