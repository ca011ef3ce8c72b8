package company

import (
	"context"
	"errors"
	"fmt"
	"strings"

	companyerrors "go-bossboard/internal/company/errors"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/shared/contextutil"
	"go-bossboard/internal/wallet"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetMine(ctx context.Context, companyID string) (CompanyResponse, error)
	UpdateSettings(ctx context.Context, companyID string, req UpdateSettingsRequest) (CompanyResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	stats  domain.StatsInvalidator
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, stats domain.StatsInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	if stats == nil {
		stats = domain.NopInvalidator{}
	}
	return &service{db: db, repo: repo, stats: stats, logger: l}
}

// GetMine returns the caller's company, creating an empty row on first access.
func (s *service) GetMine(ctx context.Context, companyID string) (CompanyResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.FirstOrCreate(ctx, id)
	if err != nil {
		s.logger.Error("get company failed", zap.String("company_id", companyID), zap.Error(err))
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*comp), nil
}

func (s *service) UpdateSettings(ctx context.Context, companyID string, req UpdateSettingsRequest) (CompanyResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	id, err := uuid.Parse(companyID)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	var updated Company
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		comp, err := qtx.FirstOrCreate(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := applySettings(comp, req); err != nil {
			return err
		}
		if err := qtx.Update(ctx, comp); err != nil {
			return mapRepositoryError(err)
		}
		updated = *comp
		return nil
	})
	if err != nil {
		s.logger.Warn("update company settings failed",
			zap.String("request_id", rid),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return CompanyResponse{}, err
	}

	s.stats.Invalidate(companyID)
	s.logger.Info("company settings updated",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Bool("schedulable", updated.Schedulable()),
	)
	return mapToResponse(updated), nil
}

func applySettings(comp *Company, req UpdateSettingsRequest) error {
	if req.Name != nil {
		comp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		comp.Email = strings.TrimSpace(*req.Email)
	}

	if req.MasterWalletAddress != nil {
		v := strings.TrimSpace(*req.MasterWalletAddress)
		if v == "" {
			comp.MasterWalletAddress = nil
		} else {
			addr, err := wallet.NormalizeAddress(v)
			if err != nil {
				return companyerrors.ErrInvalidWalletAddress
			}
			comp.MasterWalletAddress = &addr
		}
	}

	if req.WalletID != nil {
		v := strings.TrimSpace(*req.WalletID)
		if v == "" {
			comp.WalletID = nil
		} else {
			if !wallet.IsWalletID(v) {
				return companyerrors.ErrInvalidWalletID
			}
			comp.WalletID = &v
		}
	}

	if req.WalletSetID != nil {
		v := strings.TrimSpace(*req.WalletSetID)
		if v == "" {
			comp.WalletSetID = nil
		} else {
			if !wallet.IsWalletID(v) {
				return companyerrors.ErrInvalidWalletSetID
			}
			comp.WalletSetID = &v
		}
	}

	if req.PayrollDate != nil {
		v := strings.TrimSpace(*req.PayrollDate)
		if v == "" {
			comp.PayrollDate = nil
		} else {
			d, err := ParseDate(v)
			if err != nil {
				return companyerrors.ErrInvalidPayrollDate
			}
			comp.PayrollDate = &d
		}
	}

	if req.PayrollTime != nil {
		v := strings.TrimSpace(*req.PayrollTime)
		if v == "" {
			comp.PayrollTime = nil
		} else {
			h, m, err := ParseClock(v)
			if err != nil {
				return companyerrors.ErrInvalidPayrollTime
			}
			normalized := formatClock(h, m)
			comp.PayrollTime = &normalized
		}
	}
	return nil
}

func formatClock(h, m int) string {
	return fmt.Sprintf("%02d:%02d", h, m)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	return err
}

func mapToResponse(comp Company) CompanyResponse {
	resp := CompanyResponse{
		ID:                  comp.ID.String(),
		Name:                comp.Name,
		Email:               comp.Email,
		MasterWalletAddress: comp.MasterWalletAddress,
		WalletID:            comp.WalletID,
		WalletSetID:         comp.WalletSetID,
		PayrollTime:         comp.PayrollTime,
		CreatedAt:           comp.CreatedAt,
	}
	if comp.PayrollDate != nil {
		d := comp.PayrollDate.Format(DateLayout)
		resp.PayrollDate = &d
	}
	return resp
}
