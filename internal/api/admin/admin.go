package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/service"
)

// AdminHandler 处理管理后台相关的HTTP请求
type AdminHandler struct {
	statsService *service.StatsService
}

func NewAdminHandler(statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{statsService}
}

// GetStats 返回系统统计数据
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetSystemStats()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
