package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// AuditRepository — журнал действий, только вставка и чтение.
type AuditRepository interface {
	Append(ctx context.Context, e *model.AuditEvent) error
	ListByFile(ctx context.Context, fileID string) ([]model.AuditEvent, error)
	ListByActor(ctx context.Context, actorID int64, limit int) ([]model.AuditEvent, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Append(ctx context.Context, e *model.AuditEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *auditRepo) ListByFile(ctx context.Context, fileID string) ([]model.AuditEvent, error) {
	var out []model.AuditEvent
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *auditRepo) ListByActor(ctx context.Context, actorID int64, limit int) ([]model.AuditEvent, error) {
	var out []model.AuditEvent
	q := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
