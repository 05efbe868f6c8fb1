package cart

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/service"
)

// CartHandler 处理购物车相关的HTTP请求
type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService}
}

// GetCart 返回当前用户的购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	items, err := h.cartService.GetCart(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddToCart 向购物车添加商品，已存在时合并数量
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		ProductID int `json:"product_id" binding:"required"`
		Quantity  int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "商品ID是必填项", err))
		return
	}

	item, err := h.cartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateCartItem 设置购物车中某商品的数量
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的商品ID"))
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,gte=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "数量必须大于等于1", err))
		return
	}

	item, err := h.cartService.UpdateCartItem(userID, productID, req.Quantity)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveFromCart 从购物车移除商品
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.GetInt("user_id")

	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的商品ID"))
		return
	}

	if err := h.cartService.RemoveFromCart(userID, productID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "已从购物车移除"})
}
