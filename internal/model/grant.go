package model

import "time"

type GrantKind string

// Совладение — долговременное право доступа, не зависящее от судьбы
// строки передачи, которой оно было порождено.
const GrantCoOwner GrantKind = "co_owner"

// Grant — явное право доступа (файл, пользователь, вид права).
type Grant struct {
	ID     int64  `gorm:"primaryKey"`
	FileID string `gorm:"type:uuid;not null;uniqueIndex:idx_grant_file_user_kind"`
	UserID int64  `gorm:"not null;uniqueIndex:idx_grant_file_user_kind;index"`
	Kind   GrantKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_grant_file_user_kind"`

	File *File `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
