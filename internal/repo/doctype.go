package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// DocumentTypeRepository — типы документов и их поля.
type DocumentTypeRepository interface {
	CreateType(ctx context.Context, t *model.DocumentType) (*model.DocumentType, error)

	// GetType возвращает тип с полями, упорядоченными по Position.
	GetType(ctx context.Context, id int64) (*model.DocumentType, error)

	ListTypes(ctx context.Context) ([]model.DocumentType, error)
	AddField(ctx context.Context, f *model.DocumentTypeField) (*model.DocumentTypeField, error)
	RemoveField(ctx context.Context, fieldID int64) error
}

type docTypeRepo struct {
	db *gorm.DB
}

func NewDocumentTypeRepository(db *gorm.DB) DocumentTypeRepository {
	return &docTypeRepo{db: db}
}

func (r *docTypeRepo) CreateType(ctx context.Context, t *model.DocumentType) (*model.DocumentType, error) {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *docTypeRepo) GetType(ctx context.Context, id int64) (*model.DocumentType, error) {
	var t model.DocumentType
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *docTypeRepo) ListTypes(ctx context.Context) ([]model.DocumentType, error) {
	var out []model.DocumentType
	err := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *docTypeRepo) AddField(ctx context.Context, f *model.DocumentTypeField) (*model.DocumentTypeField, error) {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (r *docTypeRepo) RemoveField(ctx context.Context, fieldID int64) error {
	return r.db.WithContext(ctx).Delete(&model.DocumentTypeField{}, fieldID).Error
}
