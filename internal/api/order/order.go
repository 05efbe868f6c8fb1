package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/util"
)

// OrderHandler 处理订单相关的HTTP请求
type OrderHandler struct {
	orderService service.OrderServiceInterface
}

func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{orderService}
}

// Checkout 从购物车创建订单并扣减库存
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	// 收货手机号只要求非空，收货人可能填境外号码
	var req struct {
		CustomerName    string `json:"customerName" binding:"required"`
		ShippingPhone   string `json:"shippingPhone" binding:"required"`
		ShippingAddress string `json:"shippingAddress" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "收货人、手机号和收货地址都是必填项", err))
		return
	}

	order, err := h.orderService.Checkout(userID, req.CustomerName, req.ShippingPhone, req.ShippingAddress)
	if err != nil {
		util.Logger.Warn("下单失败", zap.Error(err), zap.Int("user_id", userID))
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("下单成功",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", userID),
		zap.Float64("total", order.Total))
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders 返回订单列表，普通用户只能看到自己的订单
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	isAdmin := c.GetBool("is_admin")

	orders, err := h.orderService.ListOrders(userID, isAdmin)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder 返回订单详情，非本人且非管理员一律返回404
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的订单ID"))
		return
	}

	order, err := h.orderService.GetOrderByID(id, c.GetInt("user_id"), c.GetBool("is_admin"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus 更新订单状态（仅管理员）
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的订单ID"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "状态是必填项", err))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
