package payroll

import (
	"time"

	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const executeReplayTTL = 24 * time.Hour

// RegisterRoutes mounts the payroll endpoints. rdb may be nil, in which case
// Idempotency-Key headers are ignored.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	payroll := r.Group("/payroll")
	{
		payroll.GET("/transactions", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetTransactions)
		payroll.GET("/preview", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.Preview)
		payroll.POST(
			"/execute",
			middleware.RBACAuthorize(rbacService, "payroll", "execute"),
			middleware.RateLimitByUser(1, 3),
			middleware.Idempotency(rdb, executeReplayTTL),
			h.Execute,
		)
	}
}
