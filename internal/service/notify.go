package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"context"

	"go.uber.org/zap"
)

// Delivery — внешняя доставка уведомлений (push, почта). Строка входящих
// уже зафиксирована в БД к моменту вызова; семантикой доставки ядро
// не владеет.
type Delivery interface {
	Deliver(ctx context.Context, n model.Notification)
}

// LogDelivery — доставка по умолчанию: просто пишет в лог.
type LogDelivery struct {
	Logger *zap.SugaredLogger
}

func (d *LogDelivery) Deliver(_ context.Context, n model.Notification) {
	d.Logger.Infow("notification",
		"user_id", n.UserID,
		"kind", n.Kind,
		"message", n.Message,
	)
}

// NotificationService — входящие пользователя для API.
type NotificationService struct {
	store *repo.Store
}

func NewNotificationService(store *repo.Store) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) Inbox(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.store.Notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) Pending(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.store.Notifications.ListPendingByUser(ctx, userID)
}

// MarkRead помечает уведомление прочитанным. ErrStale, если строка
// не принадлежит пользователю или уже обработана.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	rows, err := s.store.Notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStale
	}
	return nil
}
