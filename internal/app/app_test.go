package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-bossboard/internal/shared/testutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func serveHealth(in *infra) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", healthHandler(in))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestHealthHandler(t *testing.T) {
	t.Run("database only", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)

		w := serveHealth(&infra{db: db})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"up"`)
		assert.NotContains(t, w.Body.String(), "redis")
	})

	t.Run("redis down", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		rdb, mock := redismock.NewClientMock()
		mock.ExpectPing().SetErr(errors.New("connection refused"))

		w := serveHealth(&infra{db: db, rdb: rdb})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"down"`)
	})

	t.Run("redis up", func(t *testing.T) {
		db, _ := testutil.NewGormMock(t)
		rdb, mock := redismock.NewClientMock()
		mock.ExpectPing().SetVal("PONG")

		w := serveHealth(&infra{db: db, rdb: rdb})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redis":"up"`)
	})
}
