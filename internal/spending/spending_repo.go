package spending

import (
	"context"
	"time"

	"go-bossboard/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, s *AdditionalSpending) error
	FindByCompany(ctx context.Context, companyID, departmentID string) ([]AdditionalSpending, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*AdditionalSpending, error)
	DepartmentBelongsToCompany(ctx context.Context, companyID, departmentID string) (bool, error)
	UpdateCreatedAt(ctx context.Context, companyID, id string, at time.Time) error
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

func (r *repository) Create(ctx context.Context, s *AdditionalSpending) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// FindByCompany returns one department's spendings, or the company-level ones
// when departmentID is empty.
func (r *repository) FindByCompany(ctx context.Context, companyID, departmentID string) ([]AdditionalSpending, error) {
	var out []AdditionalSpending
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if departmentID == "" {
		q = q.Where("department_id IS NULL")
	} else {
		q = q.Where("department_id = ?", departmentID)
	}
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*AdditionalSpending, error) {
	var s AdditionalSpending
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
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

func (r *repository) UpdateCreatedAt(ctx context.Context, companyID, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&AdditionalSpending{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("created_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&AdditionalSpending{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
