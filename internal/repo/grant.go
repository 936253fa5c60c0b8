package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GrantRepository — явные права доступа (совладение).
type GrantRepository interface {
	// CreateIfAbsent пытается создать право. Если уже существует — ничего
	// не делает. Возвращает created=true, если право создано этой операцией.
	CreateIfAbsent(ctx context.Context, fileID string, userID int64, kind model.GrantKind) (created bool, err error)

	Exists(ctx context.Context, fileID string, userID int64, kind model.GrantKind) (bool, error)

	ListByFile(ctx context.Context, fileID string) ([]model.Grant, error)
}

type grantRepo struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) GrantRepository {
	return &grantRepo{db: db}
}

func (r *grantRepo) CreateIfAbsent(ctx context.Context, fileID string, userID int64, kind model.GrantKind) (bool, error) {
	g := &model.Grant{FileID: fileID, UserID: userID, Kind: kind}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_id"}, {Name: "user_id"}, {Name: "kind"}},
		DoNothing: true,
	}).Create(g)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *grantRepo) Exists(ctx context.Context, fileID string, userID int64, kind model.GrantKind) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Grant{}).
		Where("file_id = ? AND user_id = ? AND kind = ?", fileID, userID, kind).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *grantRepo) ListByFile(ctx context.Context, fileID string) ([]model.Grant, error) {
	var out []model.Grant
	err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
