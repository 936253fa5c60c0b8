package service

import (
	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// AdminService — администрирование справочников: подразделения, членство,
// типы документов и их поля. Проверка роли admin выполняется хендлером;
// сервис дополнительно перепроверяет актора.
type AdminService struct {
	store *repo.Store
}

func NewAdminService(store *repo.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) requireAdmin(ctx context.Context, actorID int64) error {
	u, err := s.store.Users.GetByID(ctx, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if u.Role != model.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AdminService) CreateDepartment(ctx context.Context, actorID int64, d *model.Department) (*model.Department, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if d.Name == "" {
		return nil, &ValidationError{Reason: "department name is required"}
	}
	return s.store.Departments.CreateDepartment(ctx, d)
}

func (s *AdminService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.store.Departments.ListDepartments(ctx)
}

func (s *AdminService) AddMember(ctx context.Context, actorID, userID, departmentID int64) (*model.DepartmentMember, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if _, err := s.store.Users.GetByID(ctx, userID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if _, err := s.store.Departments.GetDepartment(ctx, departmentID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return s.store.Departments.AddMember(ctx, userID, departmentID)
}

func (s *AdminService) RemoveMember(ctx context.Context, actorID, memberID int64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.store.Departments.RemoveMember(ctx, memberID)
}

func (s *AdminService) CreateDocumentType(ctx context.Context, actorID int64, t *model.DocumentType) (*model.DocumentType, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if t.Name == "" {
		return nil, &ValidationError{Reason: "document type name is required"}
	}
	return s.store.DocumentTypes.CreateType(ctx, t)
}

func (s *AdminService) ListDocumentTypes(ctx context.Context) ([]model.DocumentType, error) {
	return s.store.DocumentTypes.ListTypes(ctx)
}

func (s *AdminService) AddTypeField(ctx context.Context, actorID int64, f *model.DocumentTypeField) (*model.DocumentTypeField, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if f.Name == "" {
		return nil, &ValidationError{Reason: "field name is required"}
	}
	return s.store.DocumentTypes.AddField(ctx, f)
}

func (s *AdminService) ListUsers(ctx context.Context, actorID int64) ([]model.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.Users.ListUsers(ctx)
}
