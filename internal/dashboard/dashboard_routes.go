package dashboard

import (
	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	r.GET("/dashboard/stats",
		middleware.RateLimitByUser(5, 20),
		middleware.RBACAuthorize(rbacService, "dashboard", "read"),
		h.GetStats,
	)
}
