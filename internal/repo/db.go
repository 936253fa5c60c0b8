package repo

import (
	"DocKeeper/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает Postgres и прогоняет миграции всех моделей.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate выполняет AutoMigrate для всех моделей портала.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.DepartmentMember{},
		&model.DocumentType{},
		&model.DocumentTypeField{},
		&model.File{},
		&model.FileTransfer{},
		&model.Grant{},
		&model.AccessRequest{},
		&model.Notification{},
		&model.AuditEvent{},
		&model.TextEntry{},
	)
}
