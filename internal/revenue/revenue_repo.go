package revenue

import (
	"context"

	"go-bossboard/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindAllByCompany(ctx context.Context, companyID string) ([]Revenue, error)
	FindByPeriod(ctx context.Context, companyID string, month, year int) (*Revenue, error)
	Upsert(ctx context.Context, rev *Revenue) error
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

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Revenue, error) {
	var out []Revenue
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("year DESC, month DESC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindByPeriod(ctx context.Context, companyID string, month, year int) (*Revenue, error) {
	var rev Revenue
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("month = ? AND year = ?", month, year).
		First(&rev).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// Upsert inserts the month or overwrites the amount of an existing one.
func (r *repository) Upsert(ctx context.Context, rev *Revenue) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(rev).Error
}
