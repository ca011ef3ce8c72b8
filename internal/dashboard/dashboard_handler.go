package dashboard

import (
	"net/http"

	"go-bossboard/internal/shared/apperror"
	"go-bossboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dashboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetStats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.logger.Error("dashboard stats failed", zap.String("company_id", c.GetString("company_id")), zap.Error(err))
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
