package company

import (
	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	company := r.Group("/company")
	{
		// dashboard and settings page poll this
		company.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "company", "read"),
			handler.GetMe,
		)

		company.PUT("/settings",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "company", "update"),
			handler.UpdateSettings,
		)
	}
}
