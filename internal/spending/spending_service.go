package spending

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-bossboard/internal/company"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/shared/contextutil"
	spendingerrors "go-bossboard/internal/spending/errors"
	"go-bossboard/internal/wallet"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateSpendingRequest) (SpendingResponse, error)
	GetAll(ctx context.Context, companyID, departmentID string) ([]SpendingResponse, error)
	UpdateDate(ctx context.Context, companyID, id string, req UpdateDateRequest) (SpendingResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	stats  domain.StatsInvalidator
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, stats domain.StatsInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("spending.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("spending.service")
	}
	if stats == nil {
		stats = domain.NopInvalidator{}
	}
	return &service{db: db, repo: repo, stats: stats, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateSpendingRequest) (SpendingResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	cid, err := uuid.Parse(companyID)
	if err != nil {
		return SpendingResponse{}, spendingerrors.ErrInvalidCompanyID
	}
	if !req.Amount.IsPositive() {
		return SpendingResponse{}, spendingerrors.ErrInvalidAmount
	}
	addr, err := wallet.NormalizeAddress(req.WalletAddress)
	if err != nil {
		return SpendingResponse{}, spendingerrors.ErrInvalidWalletAddress
	}

	sp := &AdditionalSpending{
		ID:            uuid.New(),
		CompanyID:     cid,
		Name:          strings.TrimSpace(req.Name),
		Amount:        req.Amount,
		WalletAddress: addr,
		CreatedAt:     time.Now().UTC(),
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return SpendingResponse{}, spendingerrors.ErrInvalidDepartmentID
		}
		sp.DepartmentID = &deptID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if sp.DepartmentID != nil {
			ok, err := qtx.DepartmentBelongsToCompany(ctx, companyID, sp.DepartmentID.String())
			if err != nil {
				return err
			}
			if !ok {
				return spendingerrors.ErrDepartmentNotFound
			}
		}
		return qtx.Create(ctx, sp)
	})
	if err != nil {
		s.logger.Warn("create spending failed", zap.String("request_id", rid), zap.Error(err))
		return SpendingResponse{}, mapRepositoryError(err)
	}

	s.stats.Invalidate(companyID)
	s.logger.Info("create spending success",
		zap.String("request_id", rid),
		zap.String("spending_id", sp.ID.String()),
		zap.String("amount", sp.Amount.String()),
	)
	return mapToResponse(*sp), nil
}

func (s *service) GetAll(ctx context.Context, companyID, departmentID string) ([]SpendingResponse, error) {
	if departmentID != "" {
		if _, err := uuid.Parse(departmentID); err != nil {
			return nil, spendingerrors.ErrInvalidDepartmentID
		}
	}

	items, err := s.repo.FindByCompany(ctx, companyID, departmentID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]SpendingResponse, len(items))
	for i, it := range items {
		res[i] = mapToResponse(it)
	}
	return res, nil
}

// UpdateDate moves the spending to another day (midnight UTC). Accepts YYYY-MM-DD
// or any string that starts with it.
func (s *service) UpdateDate(ctx context.Context, companyID, id string, req UpdateDateRequest) (SpendingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SpendingResponse{}, spendingerrors.ErrInvalidSpendingID
	}
	day, err := company.ParseDate(req.Date)
	if err != nil {
		return SpendingResponse{}, spendingerrors.ErrInvalidDate
	}

	var updated AdditionalSpending
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		if err := qtx.UpdateCreatedAt(ctx, companyID, id, day); err != nil {
			return err
		}
		sp, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}
		updated = *sp
		return nil
	})
	if err != nil {
		return SpendingResponse{}, mapRepositoryError(err)
	}

	s.stats.Invalidate(companyID)
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return spendingerrors.ErrInvalidSpendingID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, companyID, id)
	})
	if err != nil {
		return mapRepositoryError(err)
	}

	s.stats.Invalidate(companyID)
	s.logger.Info("delete spending success", zap.String("spending_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return spendingerrors.ErrSpendingNotFound
	}
	return err
}

func mapToResponse(sp AdditionalSpending) SpendingResponse {
	resp := SpendingResponse{
		ID:            sp.ID.String(),
		CompanyID:     sp.CompanyID.String(),
		Name:          sp.Name,
		Amount:        sp.Amount,
		WalletAddress: sp.WalletAddress,
		CreatedAt:     sp.CreatedAt.Format(time.RFC3339),
	}
	if sp.DepartmentID != nil {
		d := sp.DepartmentID.String()
		resp.DepartmentID = &d
	}
	return resp
}
