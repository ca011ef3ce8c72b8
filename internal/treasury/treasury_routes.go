package treasury

import (
	"go-bossboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	treasury := r.Group("/treasury")
	treasury.Use(middleware.RateLimitByUser(5, 20))
	{
		treasury.GET("/wallet", middleware.RBACAuthorize(rbacService, "treasury", "read"), h.GetWallet)
		treasury.GET("/balance", middleware.RBACAuthorize(rbacService, "treasury", "read"), h.GetBalance)
		treasury.GET("/balances", middleware.RBACAuthorize(rbacService, "treasury", "read"), h.GetBalances)
		treasury.GET("/transactions", middleware.RBACAuthorize(rbacService, "treasury", "read"), h.GetTransactions)
		treasury.GET("/transactions/:id", middleware.RBACAuthorize(rbacService, "treasury", "read"), h.GetTransaction)
	}
}
