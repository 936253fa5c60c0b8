package model

import "time"

type RequestState string

const (
	RequestPending  RequestState = "pending"
	RequestApproved RequestState = "approved"
	RequestDenied   RequestState = "denied"
)

// AccessRequest — запрос доступа к чужому файлу. Разрешить его может
// только владелец файла.
type AccessRequest struct {
	ID     int64  `gorm:"primaryKey"`
	FileID string `gorm:"type:uuid;not null;index"`
	File   *File  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	RequesterID int64 `gorm:"not null;index"`
	Requester   *User `gorm:"foreignKey:RequesterID"`

	State RequestState `gorm:"type:varchar(16);not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
