package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/util"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	userService service.UserServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Nickname string `json:"nickname" binding:"required"`
		Phone    string `json:"phone" binding:"required,cn_phone"`
		Address  string `json:"address"`
		Gender   string `json:"gender" binding:"omitempty,oneof=male female other"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "邮箱、密码、昵称和手机号都是必填项", err))
		return
	}

	user := &model.User{
		Email:    registerData.Email,
		Nickname: registerData.Nickname,
		Phone:    registerData.Phone,
		Address:  registerData.Address,
		Gender:   registerData.Gender,
	}

	if err := h.userService.Register(user, registerData.Password); err != nil {
		util.Logger.Warn("注册失败", zap.Error(err), zap.String("email", registerData.Email))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login 处理用户登录请求，phone 字段也接受邮箱
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "手机号和密码都是必填项", err))
		return
	}

	user, err := h.userService.Login(loginData.Phone, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, expiresAt, err := util.GenerateToken(user.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "生成令牌失败", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": model.Session{AccessToken: token, ExpiresAt: expiresAt},
		"user":    user,
	})
}

// Me 返回当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout 处理用户登出，撤销当前令牌
func (h *AuthHandler) Logout(c *gin.Context) {
	h.userService.Logout(c.GetString("token"))
	c.JSON(http.StatusOK, gin.H{"message": "已成功登出"})
}
