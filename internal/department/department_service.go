package department

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	departmenterrors "go-bossboard/internal/department/errors"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DepartmentAllKeyPrefix = "departments:all:"
	departmentListTTL      = 30 * time.Minute
)

func GetDepartmentAllKey(companyID string) string {
	return DepartmentAllKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	stats  domain.StatsInvalidator
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, stats domain.StatsInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	if stats == nil {
		stats = domain.NopInvalidator{}
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, stats: stats, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidCompanyID
	}

	dept := &Department{
		ID:        uuid.New(),
		CompanyID: cid,
		Name:      strings.TrimSpace(req.Name),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, dept)
	})
	if err != nil {
		s.logger.Warn("create department failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error) {
	cacheKey := GetDepartmentAllKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []DepartmentResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("department cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		depts, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(depts)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, departmentListTTL).Err(); err != nil {
					s.logger.Warn("department cache write failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	var updated Department
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return err
		}
		dept.Name = strings.TrimSpace(req.Name)
		if err := qtx.Update(ctx, dept); err != nil {
			return err
		}
		updated = *dept
		return nil
	})
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return mapToResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, companyID, id)
	})
	if err != nil {
		return mapRepositoryError(err)
	}

	s.invalidate(ctx, companyID)
	return nil
}

// invalidate drops the cached department list and the dashboard aggregate.
func (s *service) invalidate(ctx context.Context, companyID string) {
	s.stats.Invalidate(companyID)
	if s.rdb == nil {
		return
	}
	cacheKey := GetDepartmentAllKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.String("key", cacheKey), zap.Error(err))
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID.String(),
		CompanyID: dept.CompanyID.String(),
		Name:      dept.Name,
		CreatedAt: dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt: dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
