package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-bossboard/internal/department"
	departmenterrors "go-bossboard/internal/department/errors"
	departmentMock "go-bossboard/internal/department/mock"
	"go-bossboard/internal/shared/testutil"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type recordingInvalidator struct{ calls []string }

func (r *recordingInvalidator) Invalidate(companyID string) { r.calls = append(r.calls, companyID) }

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := "c56a4180-65aa-42ec-a945-5fd21dec0538"
	cacheKey := department.GetDepartmentAllKey(companyID)

	t.Run("cache hit skips the repository", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		rdb, redisMock := redismock.NewClientMock()
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindAllByCompany(gomock.Any(), gomock.Any()).Times(0)
		svc := department.NewService(db, repo, rdb, nil)

		cached, _ := json.Marshal([]department.DepartmentResponse{{ID: "d-1", Name: "HR"}, {ID: "d-2", Name: "IT"}})
		redisMock.ExpectGet(cacheKey).SetVal(string(cached))

		resp, err := svc.GetAll(ctx, companyID)

		require.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "HR", resp[0].Name)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from db and stores the result", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		rdb, redisMock := redismock.NewClientMock()
		stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		dept := department.Department{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), Name: "Finance", CreatedAt: stamp, UpdatedAt: stamp}
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindAllByCompany(ctx, companyID).Return([]department.Department{dept}, nil)
		svc := department.NewService(db, repo, rdb, nil)

		expected := []department.DepartmentResponse{{
			ID:        dept.ID.String(),
			CompanyID: companyID,
			Name:      "Finance",
			CreatedAt: "2026-01-02T03:04:05Z",
			UpdatedAt: "2026-01-02T03:04:05Z",
		}}
		payload, _ := json.Marshal(expected)
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, payload, 30*time.Minute).SetVal("OK")

		resp, err := svc.GetAll(ctx, companyID)

		require.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("db error is returned", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindAllByCompany(ctx, companyID).Return(nil, errors.New("db connection error"))
		svc := department.NewService(db, repo, nil, nil)

		resp, err := svc.GetAll(ctx, companyID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success invalidates caches", func(t *testing.T) {
		db, mock := testutil.NewGormMock(t)
		testutil.ExpectTx(mock, true)
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel(department.GetDepartmentAllKey(companyID)).SetVal(1)
		inv := &recordingInvalidator{}
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, d *department.Department) error {
			assert.Equal(t, "HR", d.Name)
			assert.Equal(t, companyID, d.CompanyID.String())
			return nil
		})
		svc := department.NewService(db, repo, rdb, inv)

		resp, err := svc.Create(ctx, companyID, department.CreateDepartmentRequest{Name: "  HR "})

		require.NoError(t, err)
		assert.Equal(t, "HR", resp.Name)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, []string{companyID}, inv.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate name maps to conflict and rolls back", func(t *testing.T) {
		db, mock := testutil.NewGormMock(t)
		testutil.ExpectTx(mock, false)
		inv := &recordingInvalidator{}
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
		svc := department.NewService(db, repo, nil, inv)

		_, err := svc.Create(ctx, companyID, department.CreateDepartmentRequest{Name: "HR"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
		assert.Empty(t, inv.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid company id", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		svc := department.NewService(db, departmentMock.NewMockRepository(gomock.NewController(t)), nil, nil)

		_, err := svc.Create(ctx, "not-a-uuid", department.CreateDepartmentRequest{Name: "HR"})
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidCompanyID)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindByIDAndCompany(ctx, companyID, targetID.String()).
			Return(&department.Department{ID: targetID, Name: "HR"}, nil)
		svc := department.NewService(db, repo, nil, nil)

		resp, err := svc.GetByID(ctx, companyID, targetID.String())

		require.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().FindByIDAndCompany(ctx, companyID, targetID.String()).Return(nil, gorm.ErrRecordNotFound)
		svc := department.NewService(db, repo, nil, nil)

		_, err := svc.GetByID(ctx, companyID, targetID.String())
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		svc := department.NewService(db, departmentMock.NewMockRepository(gomock.NewController(t)), nil, nil)

		_, err := svc.GetByID(ctx, companyID, "42")
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		db, mock := testutil.NewGormMock(t)
		testutil.ExpectTx(mock, true)
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), targetID.String()).
			Return(&department.Department{ID: targetID, CompanyID: companyID, Name: "Old HR"}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, d *department.Department) error {
			assert.Equal(t, "HR Updated", d.Name)
			return nil
		})
		svc := department.NewService(db, repo, nil, nil)

		resp, err := svc.Update(ctx, companyID.String(), targetID.String(), department.UpdateDepartmentRequest{Name: "HR Updated"})

		require.NoError(t, err)
		assert.Equal(t, "HR Updated", resp.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found rolls back", func(t *testing.T) {
		db, mock := testutil.NewGormMock(t)
		testutil.ExpectTx(mock, false)
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().FindByIDAndCompany(ctx, companyID.String(), targetID.String()).Return(nil, gorm.ErrRecordNotFound)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
		svc := department.NewService(db, repo, nil, nil)

		_, err := svc.Update(ctx, companyID.String(), targetID.String(), department.UpdateDepartmentRequest{Name: "x"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	targetID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		db, mock := testutil.NewGormMock(t)
		testutil.ExpectTx(mock, true)
		inv := &recordingInvalidator{}
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(ctx, companyID, targetID).Return(nil)
		svc := department.NewService(db, repo, nil, inv)

		require.NoError(t, svc.Delete(ctx, companyID, targetID))
		assert.Equal(t, []string{companyID}, inv.calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign key violation maps to in use", func(t *testing.T) {
		db, mock := testutil.NewGormMock(t)
		testutil.ExpectTx(mock, false)
		repo := departmentMock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(ctx, companyID, targetID).Return(&pgconn.PgError{Code: "23503"})
		svc := department.NewService(db, repo, nil, nil)

		err := svc.Delete(ctx, companyID, targetID)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
