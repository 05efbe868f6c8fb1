package product

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/util"
)

// ProductHandler 处理商品相关的HTTP请求
type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService}
}

// ListProducts 返回商品列表，支持分类、精选过滤和分页
func (h *ProductHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	// 只有 featured=true 时才过滤，其他值一律不过滤
	var featured *bool
	if c.Query("featured") == "true" {
		f := true
		featured = &f
	}

	products, total, err := h.productService.ListProducts(category, featured, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"pagination": gin.H{
			"page":  page,
			"limit": pageSize,
			"total": total,
		},
	})
}

// GetProduct 返回单个商品详情
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的商品ID"))
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct 创建新商品（仅管理员）
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Category    string   `json:"category" binding:"required"`
		Description string   `json:"description" binding:"required"`
		ImageURL    string   `json:"image_url" binding:"required"`
		Images      []string `json:"images"`
		Stock       int      `json:"stock" binding:"gte=0"`
		Featured    bool     `json:"featured"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "商品名称、价格、分类、描述和主图都是必填项", err))
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}

	if err := h.productService.CreateProduct(product); err != nil {
		util.Logger.Warn("创建商品失败", zap.Error(err), zap.String("name", req.Name))
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct 部分更新商品字段（仅管理员）
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的商品ID"))
		return
	}

	var update model.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	product, err := h.productService.UpdateProduct(id, &update)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct 删除商品（仅管理员）
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "无效的商品ID"))
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "商品已删除"})
}
