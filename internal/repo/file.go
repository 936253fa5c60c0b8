package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// FileRepository — файлы архива и узлы-шкафы.
type FileRepository interface {
	Create(ctx context.Context, f *model.File) error

	// GetByID возвращает gorm.ErrRecordNotFound для неизвестного ID.
	GetByID(ctx context.Context, id string) (*model.File, error)

	ListByOwner(ctx context.Context, ownerID int64) ([]model.File, error)

	// SetStatus — безусловная смена статуса.
	SetStatus(ctx context.Context, id string, status model.FileStatus) error

	// SoftDelete помечает файл удалённым; строка остаётся.
	SoftDelete(ctx context.Context, id string) error

	UpdateMetadata(ctx context.Context, id string, meta model.JSONB) error

	// ListCabinets — корневые структурные узлы (без родителя и без содержимого).
	ListCabinets(ctx context.Context) ([]model.File, error)

	ListChildren(ctx context.Context, parentID string) ([]model.File, error)

	// LatestHardcopy — последний по времени жёсткий документ в указанных шкафах.
	LatestHardcopy(ctx context.Context, cabinetIDs []string) (*model.File, error)

	// ClaimForOCR атомарно переводит pending_ocr → processing.
	// Возвращает false, если строку уже захватил другой воркер.
	ClaimForOCR(ctx context.Context, id string) (bool, error)

	// NextPendingOCR — самый старый файл в очереди OCR.
	NextPendingOCR(ctx context.Context) (*model.File, error)

	// RecordOCRFailure увеличивает счётчик неудач и выставляет статус.
	RecordOCRFailure(ctx context.Context, id string, status model.FileStatus) error
}

type fileRepo struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f *model.File) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fileRepo) GetByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.File, error) {
	var out []model.File
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status <> ?", ownerID, model.FileStatusDeleted).
		Where("parent_id IS NOT NULL OR path <> ''").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRepo) SetStatus(ctx context.Context, id string, status model.FileStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *fileRepo) SoftDelete(ctx context.Context, id string) error {
	return r.SetStatus(ctx, id, model.FileStatusDeleted)
}

func (r *fileRepo) UpdateMetadata(ctx context.Context, id string, meta model.JSONB) error {
	return r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", id).
		Update("metadata", meta).Error
}

func (r *fileRepo) ListCabinets(ctx context.Context) ([]model.File, error) {
	var out []model.File
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL AND path = '' AND status <> ?", model.FileStatusDeleted).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRepo) ListChildren(ctx context.Context, parentID string) ([]model.File, error) {
	var out []model.File
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND status <> ?", parentID, model.FileStatusDeleted).
		Order("created_at").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fileRepo) LatestHardcopy(ctx context.Context, cabinetIDs []string) (*model.File, error) {
	if len(cabinetIDs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var f model.File
	err := r.db.WithContext(ctx).
		Where("parent_id IN ? AND copy_type = ? AND status <> ?",
			cabinetIDs, model.CopyTypeHard, model.FileStatusDeleted).
		Order("created_at DESC").
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) ClaimForOCR(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ? AND status = ?", id, model.FileStatusPendingOCR).
		Update("status", model.FileStatusProcessing)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *fileRepo) NextPendingOCR(ctx context.Context) (*model.File, error) {
	var f model.File
	err := r.db.WithContext(ctx).
		Where("status = ?", model.FileStatusPendingOCR).
		Order("created_at").
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepo) RecordOCRFailure(ctx context.Context, id string, status model.FileStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.File{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"ocr_attempts": gorm.Expr("ocr_attempts + 1"),
			"status":       status,
		}).Error
}
