package revenue

import (
	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	revenue := r.Group("/revenue")
	{
		revenue.GET("", middleware.RBACAuthorize(rbacService, "revenue", "read"), h.GetAll)
		revenue.POST("", middleware.RBACAuthorize(rbacService, "revenue", "create"), h.Upsert)
	}
}
