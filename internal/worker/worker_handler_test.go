package worker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-bossboard/internal/worker"
	workererrors "go-bossboard/internal/worker/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkerService struct {
	CreateFn  func(ctx context.Context, companyID string, req worker.CreateWorkerRequest) (worker.WorkerResponse, error)
	GetAllFn  func(ctx context.Context, companyID, departmentID string) ([]worker.WorkerResponse, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (worker.WorkerResponse, error)
	UpdateFn  func(ctx context.Context, companyID, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error)
	DeleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeWorkerService) Create(ctx context.Context, companyID string, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeWorkerService) GetAll(ctx context.Context, companyID, departmentID string) ([]worker.WorkerResponse, error) {
	return f.GetAllFn(ctx, companyID, departmentID)
}
func (f *fakeWorkerService) GetByID(ctx context.Context, companyID, id string) (worker.WorkerResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeWorkerService) Update(ctx context.Context, companyID, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeWorkerService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func newWorkerRouter(h *worker.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "comp-1")
		c.Next()
	})
	r.GET("/workers", h.GetAll)
	r.POST("/workers", h.Create)
	r.PUT("/workers/:id", h.Update)
	return r
}

func TestWorkerHandler_GetAll_FilterSortPage(t *testing.T) {
	var gotDept string
	svc := &fakeWorkerService{
		GetAllFn: func(ctx context.Context, companyID, departmentID string) ([]worker.WorkerResponse, error) {
			gotDept = departmentID
			return []worker.WorkerResponse{
				{ID: "1", Name: "Ada", Salary: decimal.NewFromInt(300)},
				{ID: "2", Name: "Bob", Salary: decimal.NewFromInt(100)},
				{ID: "3", Name: "Cy", Salary: decimal.NewFromInt(200)},
			}, nil
		},
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/workers?department_id=d-1&sort_by=salary&page_size=2", nil)
	newWorkerRouter(worker.NewHandler(svc)).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "d-1", gotDept)

	var body struct {
		Data []worker.WorkerResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "2", body.Data[0].ID)
	assert.Equal(t, "3", body.Data[1].ID)
	assert.Equal(t, 3, body.Meta.Total)
}

func TestWorkerHandler_Create(t *testing.T) {
	t.Run("numeric salary binds to decimal", func(t *testing.T) {
		svc := &fakeWorkerService{
			CreateFn: func(ctx context.Context, companyID string, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
				assert.True(t, decimal.RequireFromString("1200.25").Equal(req.Salary))
				return worker.WorkerResponse{ID: "w-1", Name: req.Name, Salary: req.Salary}, nil
			},
		}
		body := `{"department_id":"6f1d8f8e-6c1e-4b8a-9f0e-3f1b2c3d4e5f","name":"Ada","salary":1200.25,"wallet_address":"` + validAddress + `"}`

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/workers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newWorkerRouter(worker.NewHandler(svc)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("service rejection is surfaced", func(t *testing.T) {
		svc := &fakeWorkerService{
			CreateFn: func(ctx context.Context, companyID string, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
				return worker.WorkerResponse{}, workererrors.ErrInvalidWalletAddress
			},
		}
		body := `{"department_id":"6f1d8f8e-6c1e-4b8a-9f0e-3f1b2c3d4e5f","name":"Ada","wallet_address":"0x12"}`

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/workers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		newWorkerRouter(worker.NewHandler(svc)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Wallet address")
	})

	t.Run("missing department id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/workers", strings.NewReader(`{"name":"Ada","wallet_address":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		newWorkerRouter(worker.NewHandler(&fakeWorkerService{})).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWorkerHandler_Update_NotFound(t *testing.T) {
	svc := &fakeWorkerService{
		UpdateFn: func(ctx context.Context, companyID, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
			require.NotNil(t, req.IsActive)
			assert.False(t, *req.IsActive)
			return worker.WorkerResponse{}, workererrors.ErrWorkerNotFound
		},
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/workers/abc", strings.NewReader(`{"is_active":false}`))
	req.Header.Set("Content-Type", "application/json")
	newWorkerRouter(worker.NewHandler(svc)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
