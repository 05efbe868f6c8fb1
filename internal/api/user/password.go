package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/util"
)

// PasswordHandler 处理密码重置相关的HTTP请求
type PasswordHandler struct {
	userService service.UserServiceInterface
}

func NewPasswordHandler(userService service.UserServiceInterface) *PasswordHandler {
	return &PasswordHandler{userService}
}

// SendEmailOTP 发送重置密码的验证码
//
// 无论邮箱是否存在都返回成功，避免泄露账号信息。
func (h *PasswordHandler) SendEmailOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "邮箱格式不正确", err))
		return
	}

	if err := h.userService.SendEmailOTP(req.Email); err != nil {
		util.Logger.Error("发送验证码失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "如果该邮箱已注册，验证码已发送"})
}

// VerifyEmailOTP 校验验证码是否有效（不消耗验证码）
func (h *PasswordHandler) VerifyEmailOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Token string `json:"token" binding:"required,len=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "邮箱和验证码都是必填项", err))
		return
	}

	if err := h.userService.VerifyEmailOTP(req.Email, req.Token); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "邮箱验证成功", "verified": true})
}

// ChangePassword 使用验证码重置密码
func (h *PasswordHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Token       string `json:"token" binding:"required,len=6"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "邮箱、验证码和新密码都是必填项", err))
		return
	}

	if err := h.userService.ChangePassword(req.Email, req.Token, req.NewPassword); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "密码已重置"})
}
