package revenue

import (
	"context"
	"errors"
	"time"

	"go-bossboard/internal/domain"
	revenueerrors "go-bossboard/internal/revenue/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context, companyID string) ([]RevenueResponse, error)
	Upsert(ctx context.Context, companyID string, req UpsertRevenueRequest) (RevenueResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	stats  domain.StatsInvalidator
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, stats domain.StatsInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("revenue.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("revenue.service")
	}
	if stats == nil {
		stats = domain.NopInvalidator{}
	}
	return &service{db: db, repo: repo, stats: stats, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]RevenueResponse, error) {
	revs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	res := make([]RevenueResponse, len(revs))
	for i, r := range revs {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Upsert(ctx context.Context, companyID string, req UpsertRevenueRequest) (RevenueResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return RevenueResponse{}, revenueerrors.ErrInvalidCompanyID
	}
	if req.Month < 1 || req.Month > 12 {
		return RevenueResponse{}, revenueerrors.ErrInvalidMonth
	}
	if req.Amount.IsNegative() {
		return RevenueResponse{}, revenueerrors.ErrNegativeAmount
	}

	var saved Revenue
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.Upsert(ctx, &Revenue{
			ID:        uuid.New(),
			CompanyID: cid,
			Month:     req.Month,
			Year:      req.Year,
			Amount:    req.Amount,
		}); err != nil {
			return err
		}
		rev, err := qtx.FindByPeriod(ctx, companyID, req.Month, req.Year)
		if err != nil {
			return err
		}
		saved = *rev
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return RevenueResponse{}, revenueerrors.ErrRevenueConflict
		}
		s.logger.Error("upsert revenue failed", zap.String("company_id", companyID), zap.Error(err))
		return RevenueResponse{}, err
	}

	s.stats.Invalidate(companyID)
	return mapToResponse(saved), nil
}

func mapToResponse(r Revenue) RevenueResponse {
	return RevenueResponse{
		ID:        r.ID.String(),
		Amount:    r.Amount,
		Month:     r.Month,
		Year:      r.Year,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
