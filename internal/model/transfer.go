package model

import "time"

// TransferState — состояние передачи файла. Переходы только
// pending → accepted и pending → denied, оба терминальные.
type TransferState string

const (
	TransferPending  TransferState = "pending"
	TransferAccepted TransferState = "accepted"
	TransferDenied   TransferState = "denied"
)

// FileTransfer — одна передача файла одному получателю. Отправка
// подразделению разворачивается в строку на каждого участника;
// MemberID хранит контекст членства и равен nil для прямых отправок.
type FileTransfer struct {
	ID     int64  `gorm:"primaryKey"`
	FileID string `gorm:"type:uuid;not null;index"`
	File   *File  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	SenderID    int64 `gorm:"not null;index"`
	RecipientID int64 `gorm:"not null;index"`

	MemberID *int64            `gorm:"index"`
	Member   *DepartmentMember `gorm:"foreignKey:MemberID"`

	State TransferState `gorm:"type:varchar(16);not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
