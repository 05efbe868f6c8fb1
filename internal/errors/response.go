package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal: http.StatusInternalServerError,
	ErrDatabase: http.StatusInternalServerError,
	ErrStorage:  http.StatusInternalServerError,
	ErrTimeout:  http.StatusRequestTimeout,

	// 认证错误 (2000-2999)
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenExpired:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,
	ErrResourceExists:   http.StatusBadRequest,

	// 业务错误 (4000-4999)
	ErrUserNotFound:      http.StatusNotFound,
	ErrUserExists:        http.StatusBadRequest,
	ErrProductNotFound:   http.StatusNotFound,
	ErrOrderNotFound:     http.StatusNotFound,
	ErrCartItemNotFound:  http.StatusNotFound,
	ErrEmptyCart:         http.StatusBadRequest,
	ErrInsufficientStock: http.StatusBadRequest,
	ErrInvalidOTP:        http.StatusBadRequest,
}

// HandleError 统一处理错误响应，序列化为 {"error": "..."}
func HandleError(c *gin.Context, err error) {
	c.Error(err)

	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		c.JSON(status, gin.H{"error": appErr.Message})
		return
	}

	// 处理非 AppError 类型的错误
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
