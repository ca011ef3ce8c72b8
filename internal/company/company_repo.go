package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FirstOrCreate(ctx context.Context, id uuid.UUID) (*Company, error)
	FindSchedulable(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company) error
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

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) FirstOrCreate(ctx context.Context, id uuid.UUID) (*Company, error) {
	company := Company{ID: id}
	err := r.db.WithContext(ctx).
		Where(Company{ID: id}).
		FirstOrCreate(&company).Error
	return &company, err
}

func (r *repository) FindSchedulable(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Where("payroll_date IS NOT NULL").
		Where("payroll_time IS NOT NULL").
		Where("wallet_id IS NOT NULL AND wallet_id <> ''").
		Order("created_at ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
