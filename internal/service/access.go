package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// AccessMode — зачем запрашивается доступ. Алгоритм решения для всех
// режимов общий; режим попадает в журнал действий.
type AccessMode string

const (
	ModeView     AccessMode = "view"
	ModeDownload AccessMode = "download"
	ModePreview  AccessMode = "preview"
	ModeSend     AccessMode = "send"
	ModeApprove  AccessMode = "approve-request"
)

// AccessService решает, виден ли файл пользователю. Доступ выводится из
// явных сущностей: владение, активная передача (личная или через членство
// в подразделении), совладение, одобренный запрос доступа.
type AccessService struct {
	store *repo.Store
}

func NewAccessService(store *repo.Store) *AccessService {
	return &AccessService{store: store}
}

// CanAccess — контракт резолвера: может ли userID работать с файлом.
// Инфраструктурные ошибки пробрасываются отдельно от вердикта.
func (s *AccessService) CanAccess(ctx context.Context, userID int64, fileID string, mode AccessMode) (bool, error) {
	_, err := s.Require(ctx, userID, fileID, mode)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Require возвращает файл, если доступ разрешён, иначе ErrNotFound.
// Для удалённого и несуществующего файла ответ одинаков.
func (s *AccessService) Require(ctx context.Context, userID int64, fileID string, mode AccessMode) (*model.File, error) {
	f, err := s.store.Files.GetByID(ctx, fileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if f.Status == model.FileStatusDeleted {
		return nil, ErrNotFound
	}

	if f.OwnerID == userID {
		return f, nil
	}

	// личная передача pending/accepted
	ok, err := s.store.Transfers.ExistsActiveDirect(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		return f, nil
	}

	// передача подразделению видна каждому его участнику
	memberIDs, err := s.store.Departments.MemberIDsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ok, err = s.store.Transfers.ExistsActiveForMembers(ctx, fileID, memberIDs)
	if err != nil {
		return nil, err
	}
	if ok {
		return f, nil
	}

	// совладение
	ok, err = s.store.Grants.Exists(ctx, fileID, userID, model.GrantCoOwner)
	if err != nil {
		return nil, err
	}
	if ok {
		return f, nil
	}

	// одобренный запрос доступа
	ok, err = s.store.Requests.ExistsApproved(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		return f, nil
	}

	return nil, ErrNotFound
}
