package repo

import (
	"DocKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// DepartmentRepository — подразделения и членство в них.
type DepartmentRepository interface {
	CreateDepartment(ctx context.Context, d *model.Department) (*model.Department, error)
	GetDepartment(ctx context.Context, id int64) (*model.Department, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
	UpdateDepartment(ctx context.Context, d *model.Department) error

	AddMember(ctx context.Context, userID, departmentID int64) (*model.DepartmentMember, error)
	RemoveMember(ctx context.Context, memberID int64) error

	// ListMembers — все членства подразделения (на момент вызова).
	ListMembers(ctx context.Context, departmentID int64) ([]model.DepartmentMember, error)

	// MemberIDsOfUser — ID строк членства, которые держит пользователь.
	MemberIDsOfUser(ctx context.Context, userID int64) ([]int64, error)

	ListMembershipsOfUser(ctx context.Context, userID int64) ([]model.DepartmentMember, error)
}

type departmentRepo struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) CreateDepartment(ctx context.Context, d *model.Department) (*model.Department, error) {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *departmentRepo) GetDepartment(ctx context.Context, id int64) (*model.Department, error) {
	var d model.Department
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepo) ListDepartments(ctx context.Context) ([]model.Department, error) {
	var out []model.Department
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *departmentRepo) UpdateDepartment(ctx context.Context, d *model.Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *departmentRepo) AddMember(ctx context.Context, userID, departmentID int64) (*model.DepartmentMember, error) {
	m := &model.DepartmentMember{UserID: userID, DepartmentID: departmentID}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *departmentRepo) RemoveMember(ctx context.Context, memberID int64) error {
	return r.db.WithContext(ctx).Delete(&model.DepartmentMember{}, memberID).Error
}

func (r *departmentRepo) ListMembers(ctx context.Context, departmentID int64) ([]model.DepartmentMember, error) {
	var out []model.DepartmentMember
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *departmentRepo) MemberIDsOfUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.DepartmentMember{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *departmentRepo) ListMembershipsOfUser(ctx context.Context, userID int64) ([]model.DepartmentMember, error) {
	var out []model.DepartmentMember
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
