package model

import "time"

type NotificationKind string

const (
	NotifyFileReceived   NotificationKind = "file_received"   // получателю: вам отправлен файл
	NotifyTransferResult NotificationKind = "transfer_result" // отправителю: принят/отклонён
	NotifyAccessRequest  NotificationKind = "access_request"  // владельцу: запрошен доступ
	NotifyRequestResult  NotificationKind = "request_result"  // запросившему: итог запроса
)

type NotificationState string

const (
	NotificationPending  NotificationState = "pending"
	NotificationAccepted NotificationState = "accepted"
	NotificationDenied   NotificationState = "denied"
	NotificationRead     NotificationState = "read"
)

// Notification — строка входящих пользователя. Уведомление file_received
// связано со своей передачей через TransferID и меняет состояние вместе
// с ней в одной транзакции БД.
type Notification struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	FileID *string `gorm:"type:uuid;index"`
	File   *File   `gorm:"foreignKey:FileID"`

	TransferID *int64        `gorm:"index"`
	Transfer   *FileTransfer `gorm:"foreignKey:TransferID"`

	Kind    NotificationKind  `gorm:"type:varchar(24);not null"`
	State   NotificationState `gorm:"type:varchar(16);not null;default:'pending';index"`
	Message string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
