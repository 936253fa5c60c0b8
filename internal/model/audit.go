package model

import "time"

type AuditAction string

const (
	AuditUpload         AuditAction = "upload"
	AuditDownload       AuditAction = "download"
	AuditPreview        AuditAction = "preview"
	AuditSend           AuditAction = "send"
	AuditAccept         AuditAction = "accept"
	AuditDeny           AuditAction = "deny"
	AuditDelete         AuditAction = "delete"
	AuditRequestAccess  AuditAction = "request_access"
	AuditResolveRequest AuditAction = "resolve_request"
	AuditOCR            AuditAction = "ocr"
)

// AuditEvent — строка журнала действий. Только вставка, никогда
// не обновляется.
type AuditEvent struct {
	ID      int64 `gorm:"primaryKey"`
	ActorID int64 `gorm:"not null;index"`

	FileID *string `gorm:"type:uuid;index"`

	Action AuditAction `gorm:"type:varchar(24);not null;index"`
	Detail string

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
