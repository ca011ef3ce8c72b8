package worker

import (
	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	workers := r.Group("/workers")
	{
		workers.GET("", middleware.RBACAuthorize(rbacService, "worker", "read"), h.GetAll)
		workers.POST("", middleware.RBACAuthorize(rbacService, "worker", "create"), h.Create)
		workers.GET("/:id", middleware.RBACAuthorize(rbacService, "worker", "read"), h.GetById)
		workers.PUT("/:id", middleware.RBACAuthorize(rbacService, "worker", "update"), h.Update)
		workers.DELETE("/:id", middleware.RBACAuthorize(rbacService, "worker", "delete"), h.Delete)
	}
}
