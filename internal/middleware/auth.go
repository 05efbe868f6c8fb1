package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/util"
)

// AuthMiddleware 验证 Bearer 令牌，并把 user_id 和 is_admin 写入请求上下文。
// 管理员标志从用户记录中读取，每次请求都重新解析。
func AuthMiddleware(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
			c.Abort()
			return
		}

		if userService.IsTokenBlacklisted(parts[1]) {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "令牌已被撤销"))
			c.Abort()
			return
		}

		userID, err := util.ValidateToken(parts[1])
		if err != nil {
			errors.HandleError(c, errors.Wrap(errors.ErrUnauthorized, "无效或过期的令牌", err))
			c.Abort()
			return
		}

		user, err := userService.GetUserByID(userID)
		if err != nil {
			util.Logger.Warn("令牌对应的用户不存在", zap.Int("user_id", userID))
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效或过期的令牌"))
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("is_admin", user.IsAdmin)
		c.Set("token", parts[1])
		c.Next()
	}
}
