package model

import "time"

// DocumentType — тип документа («Memo», «Invoice»...). Владеет
// упорядоченным набором определений полей.
type DocumentType struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`

	Fields []DocumentTypeField `gorm:"foreignKey:DocumentTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DocumentTypeField — определение одного поля метаданных типа документа.
// Метаданные загружаемого файла валидируются по обязательным полям его типа.
type DocumentTypeField struct {
	ID             int64  `gorm:"primaryKey"`
	DocumentTypeID int64  `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Label          string
	FieldType      string `gorm:"type:varchar(32);not null;default:'text'"`
	Required       bool   `gorm:"not null;default:false"`
	Position       int    `gorm:"not null;default:0"` // порядок отображения
}
