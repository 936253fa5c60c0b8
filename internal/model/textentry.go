package model

import "time"

// TextEntry — извлечённый OCR-текст файла для полнотекстового поиска.
type TextEntry struct {
	ID      int64  `gorm:"primaryKey"`
	FileID  string `gorm:"type:uuid;not null;uniqueIndex"`
	File    *File  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Content string

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
