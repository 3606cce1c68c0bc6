package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogsphere/internal/cache"
	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
	"blogsphere/internal/model"
	"blogsphere/internal/repository"
)

// FollowService manages the follower graph.
type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) ([]model.User, error)
	Following(ctx context.Context, userID uuid.UUID) ([]model.User, error)
}

type followService struct {
	repo     repository.FollowRepository
	userRepo repository.UserRepository
	notifier NotificationService
	cache    *cache.Client
	log      *logger.Logger
}

// NewFollowService builds a FollowService.
func NewFollowService(repo repository.FollowRepository, userRepo repository.UserRepository, notifier NotificationService, cache *cache.Client, log *logger.Logger) FollowService {
	return &followService{repo: repo, userRepo: userRepo, notifier: notifier, cache: cache, log: log}
}

func (s *followService) ensureUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return nil
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return apperrors.ErrCannotFollowSelf
	}
	if err := s.ensureUser(ctx, followeeID); err != nil {
		return err
	}

	if err := s.repo.Follow(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrAlreadyFollowing
		}
		return fmt.Errorf("follow: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(followerID), userCacheKey(followeeID))

	if err := s.notifier.Notify(ctx, Event{
		Type:        model.NotificationFollow,
		RecipientID: followeeID,
		ActorID:     followerID,
	}); err != nil {
		s.log.Warn("notification failed", "type", model.NotificationFollow, "recipient", followeeID, "err", err)
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return apperrors.ErrCannotFollowSelf
	}
	if err := s.repo.Unfollow(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFollowing
		}
		return fmt.Errorf("unfollow: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(followerID), userCacheKey(followeeID))
	return nil
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.repo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.repo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}
