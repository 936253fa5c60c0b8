package service

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки доменного слоя. Хендлеры отображают их в HTTP-коды;
// детали инфраструктурных сбоев наружу не выходят.
var (
	// ErrNotFound возвращается и для несуществующего файла, и для отказа
	// в доступе: отличить их снаружи нельзя, существование не раскрываем.
	ErrNotFound = errors.New("not found")

	// ErrStale — операция над строкой, которая уже не в ожидаемом
	// состоянии: двойной submit, гонка или подделанный id.
	ErrStale = errors.New("not found or already processed")

	// ErrForbidden — действие запрещено актору (не владелец, не админ).
	ErrForbidden = errors.New("access denied")
)

// ValidationError — отсутствующие обязательные поля метаданных либо
// некорректные координаты хранения. Единственный класс ошибок,
// перечисляющий детали для вызывающего.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}
