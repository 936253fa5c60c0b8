package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// AccessRequestRepository — запросы доступа к файлам.
type AccessRequestRepository interface {
	Create(ctx context.Context, req *model.AccessRequest) error

	GetByID(ctx context.Context, id int64) (*model.AccessRequest, error)

	// HasPending — есть ли уже ожидающий запрос этой пары (файл, пользователь).
	HasPending(ctx context.Context, fileID string, requesterID int64) (bool, error)

	// UpdateStateFromPending переводит pending → state; 0 строк значит,
	// что запрос уже разрешён или не существует.
	UpdateStateFromPending(ctx context.Context, id int64, state model.RequestState) (int64, error)

	ExistsApproved(ctx context.Context, fileID string, requesterID int64) (bool, error)

	ListPendingForOwner(ctx context.Context, ownerID int64) ([]model.AccessRequest, error)
}

type accessRequestRepo struct {
	db *gorm.DB
}

func NewAccessRequestRepository(db *gorm.DB) AccessRequestRepository {
	return &accessRequestRepo{db: db}
}

func (r *accessRequestRepo) Create(ctx context.Context, req *model.AccessRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *accessRequestRepo) GetByID(ctx context.Context, id int64) (*model.AccessRequest, error) {
	var req model.AccessRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *accessRequestRepo) HasPending(ctx context.Context, fileID string, requesterID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AccessRequest{}).
		Where("file_id = ? AND requester_id = ? AND state = ?",
			fileID, requesterID, model.RequestPending).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accessRequestRepo) UpdateStateFromPending(ctx context.Context, id int64, state model.RequestState) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.AccessRequest{}).
		Where("id = ? AND state = ?", id, model.RequestPending).
		Update("state", state)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *accessRequestRepo) ExistsApproved(ctx context.Context, fileID string, requesterID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.AccessRequest{}).
		Where("file_id = ? AND requester_id = ? AND state = ?",
			fileID, requesterID, model.RequestApproved).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accessRequestRepo) ListPendingForOwner(ctx context.Context, ownerID int64) ([]model.AccessRequest, error) {
	var out []model.AccessRequest
	err := r.db.WithContext(ctx).
		Joins("JOIN files ON files.id = access_requests.file_id").
		Where("files.owner_id = ? AND access_requests.state = ?", ownerID, model.RequestPending).
		Order("access_requests.created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
