package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// TransferRepository — строки передач файлов (машина состояний отправки).
type TransferRepository interface {
	Create(ctx context.Context, t *model.FileTransfer) error

	// GetPending — ожидающая передача файла данному получателю.
	// gorm.ErrRecordNotFound, если такой нет (уже обработана или не было).
	GetPending(ctx context.Context, fileID string, recipientID int64) (*model.FileTransfer, error)

	// UpdateStateFromPending переводит pending → state; защита от гонки
	// двойного accept/deny — предикат WHERE по текущему состоянию.
	// Возвращает число задетых строк.
	UpdateStateFromPending(ctx context.Context, id int64, state model.TransferState) (int64, error)

	// ExistsActiveDirect — есть ли pending/accepted передача, адресованная
	// пользователю лично (без контекста подразделения).
	ExistsActiveDirect(ctx context.Context, fileID string, userID int64) (bool, error)

	// ExistsActiveForMembers — есть ли pending/accepted передача на одно из
	// указанных членств (доступ «всем участникам подразделения»).
	ExistsActiveForMembers(ctx context.Context, fileID string, memberIDs []int64) (bool, error)

	ListForRecipient(ctx context.Context, recipientID int64, state model.TransferState) ([]model.FileTransfer, error)
}

type transferRepo struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepo{db: db}
}

func (r *transferRepo) Create(ctx context.Context, t *model.FileTransfer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transferRepo) GetPending(ctx context.Context, fileID string, recipientID int64) (*model.FileTransfer, error) {
	var t model.FileTransfer
	err := r.db.WithContext(ctx).
		Where("file_id = ? AND recipient_id = ? AND state = ?",
			fileID, recipientID, model.TransferPending).
		Order("id").
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transferRepo) UpdateStateFromPending(ctx context.Context, id int64, state model.TransferState) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.FileTransfer{}).
		Where("id = ? AND state = ?", id, model.TransferPending).
		Update("state", state)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *transferRepo) ExistsActiveDirect(ctx context.Context, fileID string, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.FileTransfer{}).
		Where("file_id = ? AND recipient_id = ? AND member_id IS NULL AND state IN ?",
			fileID, userID, []model.TransferState{model.TransferPending, model.TransferAccepted}).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *transferRepo) ExistsActiveForMembers(ctx context.Context, fileID string, memberIDs []int64) (bool, error) {
	if len(memberIDs) == 0 {
		return false, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.FileTransfer{}).
		Where("file_id = ? AND member_id IN ? AND state IN ?",
			fileID, memberIDs, []model.TransferState{model.TransferPending, model.TransferAccepted}).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *transferRepo) ListForRecipient(ctx context.Context, recipientID int64, state model.TransferState) ([]model.FileTransfer, error) {
	var out []model.FileTransfer
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND state = ?", recipientID, state).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
