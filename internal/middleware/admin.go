package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/util"
)

// AdminMiddleware 确保只有管理员可以访问某些路由，
// 必须在 AuthMiddleware 之后使用
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_admin") {
			util.Logger.Warn("非管理员访问",
				zap.Int("user_id", c.GetInt("user_id")),
				zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.New(errors.ErrForbidden, "需要管理员权限"))
			c.Abort()
			return
		}
		c.Next()
	}
}
