package repo

import (
	"context"

	"gorm.io/gorm"
)

// Store — набор репозиториев над одним подключением. Atomic создаёт
// копию набора поверх транзакции: либо фиксируются все изменения
// мутирующей последовательности, либо ни одно.
type Store struct {
	db   *gorm.DB
	opts []StoreOption

	Users         UserRepository
	Departments   DepartmentRepository
	DocumentTypes DocumentTypeRepository
	Files         FileRepository
	Transfers     TransferRepository
	Grants        GrantRepository
	Requests      AccessRequestRepository
	Notifications NotificationRepository
	Audit         AuditRepository
	Texts         TextRepository
}

// StoreOption подменяет отдельные репозитории (используется тестами).
// Опции применяются и к транзакционным копиям Store.
type StoreOption func(*Store)

func NewStore(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{
		db:            db,
		opts:          opts,
		Users:         NewUserRepository(db),
		Departments:   NewDepartmentRepository(db),
		DocumentTypes: NewDocumentTypeRepository(db),
		Files:         NewFileRepository(db),
		Transfers:     NewTransferRepository(db),
		Grants:        NewGrantRepository(db),
		Requests:      NewAccessRequestRepository(db),
		Notifications: NewNotificationRepository(db),
		Audit:         NewAuditRepository(db),
		Texts:         NewTextRepository(db),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Atomic выполняет fn в транзакции БД; ошибка fn откатывает всё.
func (s *Store) Atomic(ctx context.Context, fn func(*Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx, s.opts...))
	})
}
