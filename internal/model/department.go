package model

import "time"

// Department — подразделение. ParentID задаёт дерево подразделений.
type Department struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"uniqueIndex;not null"`
	Type     string
	ParentID *int64 `gorm:"index"`

	Parent *Department `gorm:"foreignKey:ParentID"`

	// Зарезервировано под планирование физических папок; не форсируется.
	FolderCapacity int `gorm:"default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DepartmentMember — членство пользователя в подразделении. У строки
// собственный ID: на него ссылаются передачи файлов, адресованные
// «пользователю-в-подразделении».
type DepartmentMember struct {
	ID           int64 `gorm:"primaryKey"`
	UserID       int64 `gorm:"not null;index;uniqueIndex:idx_member_user_dept"`
	DepartmentID int64 `gorm:"not null;index;uniqueIndex:idx_member_user_dept"`

	User       *User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Department *Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
