package model

import "time"

type FileStatus string

const (
	FileStatusPending     FileStatus = "pending"
	FileStatusActive      FileStatus = "active"
	FileStatusPendingOCR  FileStatus = "pending_ocr"
	FileStatusProcessing  FileStatus = "processing" // строка захвачена OCR-воркером
	FileStatusOCRComplete FileStatus = "ocr_complete"
	FileStatusOCRFailed   FileStatus = "ocr_failed"
	FileStatusDeleted     FileStatus = "deleted"
)

type CopyType string

const (
	CopyTypeHard CopyType = "hard" // физический документ в шкафу
	CopyTypeSoft CopyType = "soft" // только цифровая копия
)

// File — файл архива либо структурный узел шкафа-хранилища.
// Узлы-шкафы не имеют физического содержимого: Path пуст, ParentID nil.
// Лист с ненулевым ParentID — документ внутри шкафа. Удаление мягкое:
// статус deleted, строка остаётся.
type File struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Name     string `gorm:"not null"`
	Path     string // путь к шифртексту в каталоге хранения; пуст для узлов-шкафов
	Size     int64
	MimeType string

	OwnerID int64 `gorm:"not null;index"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	DocumentTypeID *int64        `gorm:"index"`
	DocumentType   *DocumentType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	ParentID *string `gorm:"type:uuid;index"` // ссылка на узел-шкаф
	Parent   *File   `gorm:"foreignKey:ParentID"`

	CopyType CopyType   `gorm:"type:varchar(8);not null;default:'soft'"`
	Status   FileStatus `gorm:"type:varchar(16);not null;default:'pending';index"`

	// cabinet/layer/box/folder плюс поля типа документа
	Metadata JSONB `gorm:"type:jsonb"`

	OCRAttempts int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Ключи метаданных физического размещения.
const (
	MetaCabinet = "cabinet"
	MetaLayer   = "layer"
	MetaBox     = "box"
	MetaFolder  = "folder"
)

// DigitalCabinet — сентинельное имя шкафа для цифровых копий: координаты
// layer/box/folder для них не имеют смысла и равны nil.
const DigitalCabinet = "Digital"
