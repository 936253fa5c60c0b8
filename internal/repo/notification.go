package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// NotificationRepository — входящие пользователей.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error

	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)

	ListPendingByUser(ctx context.Context, userID int64) ([]model.Notification, error)

	// SetStateByTransfer синхронизирует уведомление file_received с его
	// передачей: одна транзакция БД меняет и строку передачи, и эту.
	SetStateByTransfer(ctx context.Context, transferID int64, state model.NotificationState) error

	// MarkRead помечает уведомление прочитанным; строка должна принадлежать
	// пользователю и ещё не быть прочитанной. Возвращает число задетых строк.
	MarkRead(ctx context.Context, id, userID int64) (int64, error)
}

type notificationRepo struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	var out []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) ListPendingByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	var out []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND state = ?", userID, model.NotificationPending).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) SetStateByTransfer(ctx context.Context, transferID int64, state model.NotificationState) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("transfer_id = ?", transferID).
		Update("state", state).Error
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ? AND state <> ?", id, userID, model.NotificationRead).
		Update("state", model.NotificationRead)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
