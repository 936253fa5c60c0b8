package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TextRepository — хранилище извлечённого OCR-текста.
type TextRepository interface {
	// Upsert записывает текст файла, заменяя прежний.
	Upsert(ctx context.Context, fileID, content string) error

	GetByFileID(ctx context.Context, fileID string) (*model.TextEntry, error)

	// SearchFileIDs — ID файлов, текст которых содержит подстроку query.
	SearchFileIDs(ctx context.Context, query string) ([]string, error)
}

type textRepo struct {
	db *gorm.DB
}

func NewTextRepository(db *gorm.DB) TextRepository {
	return &textRepo{db: db}
}

func (r *textRepo) Upsert(ctx context.Context, fileID, content string) error {
	e := &model.TextEntry{FileID: fileID, Content: content}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content"}),
	}).Create(e).Error
}

func (r *textRepo) GetByFileID(ctx context.Context, fileID string) (*model.TextEntry, error) {
	var e model.TextEntry
	if err := r.db.WithContext(ctx).Where("file_id = ?", fileID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *textRepo) SearchFileIDs(ctx context.Context, query string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.TextEntry{}).
		Where("content LIKE ?", "%"+query+"%").
		Pluck("file_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
