package worker

import (
	"context"
	"strings"
	"time"

	"go-bossboard/internal/domain"
	"go-bossboard/internal/shared/contextutil"
	"go-bossboard/internal/wallet"
	workererrors "go-bossboard/internal/worker/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context, companyID, departmentID string) ([]WorkerResponse, error)
	GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	stats  domain.StatsInvalidator
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, stats domain.StatsInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("worker.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("worker.service")
	}
	if stats == nil {
		stats = domain.NopInvalidator{}
	}
	return &service{db: db, repo: repo, stats: stats, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create worker requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("department_id", req.DepartmentID),
	)

	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidDepartmentID
	}
	if req.Salary.IsNegative() {
		return WorkerResponse{}, workererrors.ErrNegativeSalary
	}
	addr, err := wallet.NormalizeAddress(req.WalletAddress)
	if err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWalletAddress
	}

	w := &Worker{
		ID:            uuid.New(),
		DepartmentID:  deptID,
		Name:          strings.TrimSpace(req.Name),
		Surname:       strings.TrimSpace(req.Surname),
		Salary:        req.Salary,
		WalletAddress: addr,
		IsActive:      true,
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		ok, err := qtx.DepartmentBelongsToCompany(ctx, companyID, req.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return workererrors.ErrDepartmentNotInCompany
		}
		return qtx.Create(ctx, w)
	})
	if err != nil {
		s.logger.Warn("create worker failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, mapRepositoryError(err)
	}

	s.stats.Invalidate(companyID)
	s.logger.Info("create worker success",
		zap.String("request_id", rid),
		zap.String("worker_id", w.ID.String()),
	)
	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, companyID, departmentID string) ([]WorkerResponse, error) {
	if departmentID != "" {
		if _, err := uuid.Parse(departmentID); err != nil {
			return nil, workererrors.ErrInvalidDepartmentID
		}
	}

	workers, err := s.repo.FindAllByCompany(ctx, companyID, departmentID)
	if err != nil {
		s.logger.Error("get all workers failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(workers), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}

	w, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateWorkerRequest) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidWorkerID
	}

	var updated Worker
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		w, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}
		if err := s.applyUpdate(ctx, qtx, companyID, w, req); err != nil {
			return err
		}
		if err := qtx.Update(ctx, w); err != nil {
			return err
		}
		updated = *w
		return nil
	})
	if err != nil {
		s.logger.Warn("update worker failed",
			zap.String("request_id", rid),
			zap.String("worker_id", id),
			zap.Error(err),
		)
		return WorkerResponse{}, mapRepositoryError(err)
	}

	s.stats.Invalidate(companyID)
	s.logger.Info("update worker success", zap.String("request_id", rid), zap.String("worker_id", id))
	return mapToResponse(updated), nil
}

func (s *service) applyUpdate(ctx context.Context, qtx Repository, companyID string, w *Worker, req UpdateWorkerRequest) error {
	if req.DepartmentID != nil {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return workererrors.ErrInvalidDepartmentID
		}
		if deptID != w.DepartmentID {
			ok, err := qtx.DepartmentBelongsToCompany(ctx, companyID, *req.DepartmentID)
			if err != nil {
				return err
			}
			if !ok {
				return workererrors.ErrDepartmentNotInCompany
			}
			w.DepartmentID = deptID
		}
	}
	if req.Name != nil {
		w.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		w.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return workererrors.ErrNegativeSalary
		}
		w.Salary = *req.Salary
	}
	if req.WalletAddress != nil {
		addr, err := wallet.NormalizeAddress(*req.WalletAddress)
		if err != nil {
			return workererrors.ErrInvalidWalletAddress
		}
		w.WalletAddress = addr
	}
	if req.IsActive != nil {
		w.IsActive = *req.IsActive
	}
	return nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return workererrors.ErrInvalidWorkerID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, companyID, id)
	})
	if err != nil {
		s.logger.Warn("delete worker failed", zap.String("worker_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.stats.Invalidate(companyID)
	s.logger.Info("delete worker success", zap.String("worker_id", id))
	return nil
}

func mapToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:            w.ID.String(),
		DepartmentID:  w.DepartmentID.String(),
		Name:          w.Name,
		Surname:       w.Surname,
		Salary:        w.Salary,
		WalletAddress: w.WalletAddress,
		IsActive:      w.IsActive,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(workers []Worker) []WorkerResponse {
	res := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		res[i] = mapToResponse(w)
	}
	return res
}
