package worker

import (
	"context"

	"go-bossboard/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, w *Worker) error
	FindAllByCompany(ctx context.Context, companyID, departmentID string) ([]Worker, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]Worker, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Worker, error)
	DepartmentBelongsToCompany(ctx context.Context, companyID, departmentID string) (bool, error)
	Update(ctx context.Context, w *Worker) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// FindAllByCompany lists workers of the company, optionally narrowed to one department.
func (r *repository) FindAllByCompany(ctx context.Context, companyID, departmentID string) ([]Worker, error) {
	var workers []Worker
	q := r.db.WithContext(ctx).Scopes(tenant.DepartmentScope(companyID))
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Order("name ASC, surname ASC").Find(&workers).Error
	return workers, err
}

// FindActiveByCompany returns the payroll population: active workers reached through the
// company's departments.
func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]Worker, error) {
	var workers []Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.DepartmentScope(companyID)).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&workers).Error
	return workers, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Worker, error) {
	var w Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.DepartmentScope(companyID)).
		First(&w, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) DepartmentBelongsToCompany(ctx context.Context, companyID, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, w *Worker) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.DepartmentScope(companyID)).
		Delete(&Worker{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
