package model

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User — пользователь портала. Владеет файлами (как загрузивший)
// и состоит в подразделениях через DepartmentMember.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш
	Role     Role   `gorm:"type:varchar(16);not null;default:'client'"`
	Position string
	// Путь к аватару в каталоге хранения (опционально)
	AvatarPath string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
