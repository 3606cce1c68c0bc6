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
	"blogsphere/internal/notify"
	"blogsphere/internal/repository"
)

const defaultNotificationLimit = 50

// Event describes something a user did that another user should hear about.
type Event struct {
	Type        model.NotificationType
	RecipientID uuid.UUID
	ActorID     uuid.UUID
	BlogID      *uuid.UUID
	CommentID   *uuid.UUID
	BlogTitle   string
}

// NotificationService persists notifications and pushes them to live subscribers.
type NotificationService interface {
	Notify(ctx context.Context, ev Event) error
	List(ctx context.Context, recipientID uuid.UUID, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Subscribe(recipientID uuid.UUID) (<-chan model.Notification, func())
}

type notificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	hub      *notify.Hub
	log      *logger.Logger
}

// NewNotificationService wires a NotificationService.
func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository, hub *notify.Hub, log *logger.Logger) NotificationService {
	return &notificationService{repo: repo, userRepo: userRepo, hub: hub, log: log}
}

// Notify stores the event for its recipient. Events a user triggers on their own content are dropped.
func (s *notificationService) Notify(ctx context.Context, ev Event) error {
	if ev.RecipientID == ev.ActorID {
		return nil
	}

	actor, err := s.userRepo.FindByID(ctx, ev.ActorID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}

	n := &model.Notification{
		RecipientID: ev.RecipientID,
		ActorID:     ev.ActorID,
		Type:        ev.Type,
		BlogID:      ev.BlogID,
		CommentID:   ev.CommentID,
		Message:     notificationMessage(ev, actor.UserName),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	n.Actor = actor
	delivered := s.hub.Publish(*n)
	s.log.Debug("notification created", "type", n.Type, "recipient", n.RecipientID, "delivered", delivered)
	return nil
}

func notificationMessage(ev Event, actorName string) string {
	switch ev.Type {
	case model.NotificationFollow:
		return fmt.Sprintf("%s started following you", actorName)
	case model.NotificationComment:
		if ev.BlogTitle != "" {
			return fmt.Sprintf("%s commented on %q", actorName, ev.BlogTitle)
		}
		return fmt.Sprintf("%s commented on your blog", actorName)
	case model.NotificationReply:
		return fmt.Sprintf("%s replied to your comment", actorName)
	default:
		return actorName
	}
}

func (s *notificationService) List(ctx context.Context, recipientID uuid.UUID, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}
	items, err := s.repo.ListByRecipient(ctx, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return n, nil
}

func (s *notificationService) Subscribe(recipientID uuid.UUID) (<-chan model.Notification, func()) {
	return s.hub.Subscribe(recipientID)
}
