package spending

import (
	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	spendings := r.Group("/spendings")
	{
		spendings.GET("", middleware.RBACAuthorize(rbacService, "spending", "read"), h.GetAll)
		spendings.POST("", middleware.RBACAuthorize(rbacService, "spending", "create"), h.Create)
		spendings.PATCH("/:id/date", middleware.RBACAuthorize(rbacService, "spending", "update"), h.UpdateDate)
		spendings.DELETE("/:id", middleware.RBACAuthorize(rbacService, "spending", "delete"), h.Delete)
	}
}
