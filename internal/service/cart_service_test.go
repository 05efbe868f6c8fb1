package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
)

// TestAddToCart 测试添加新商品到购物车
func TestAddToCart(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := NewCartService(mockCartRepo, mockProductRepo)

	earrings := &model.Product{ID: 5, Name: "珍珠耳环", Price: 80, Stock: 4, Category: model.CategoryEarrings}
	mockProductRepo.On("FindByID", 5).Return(earrings, nil)
	mockCartRepo.On("FindByUserAndProduct", 7, 5).Return(nil, nil)
	mockCartRepo.On("Create", mock.AnythingOfType("*model.CartItem")).Return(nil)

	item, err := cartService.AddToCart(7, 5, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, earrings, item.Product)
	mockCartRepo.AssertExpectations(t)
}

// TestAddToCartMerge 测试重复添加时合并数量，合并结果受库存限制
func TestAddToCartMerge(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := NewCartService(mockCartRepo, mockProductRepo)

	earrings := &model.Product{ID: 5, Name: "珍珠耳环", Price: 80, Stock: 4, Category: model.CategoryEarrings}
	existing := &model.CartItem{ID: 10, UserID: 7, ProductID: 5, Quantity: 2}

	mockProductRepo.On("FindByID", 5).Return(earrings, nil)
	mockCartRepo.On("FindByUserAndProduct", 7, 5).Return(existing, nil)
	mockCartRepo.On("UpdateQuantity", 7, 5, 4).Return(nil)

	// 2 + 2 = 4，正好等于库存
	item, err := cartService.AddToCart(7, 5, 2)
	assert.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	// 再加一件就超出库存
	item, err = cartService.AddToCart(7, 5, 1)
	assert.Nil(t, item)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInsufficientStock, appErr.Code)
	mockCartRepo.AssertExpectations(t)
}

// TestAddToCartProductNotFound 测试添加不存在的商品
func TestAddToCartProductNotFound(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := NewCartService(mockCartRepo, mockProductRepo)

	mockProductRepo.On("FindByID", 99).Return(nil, nil)

	item, err := cartService.AddToCart(7, 99, 1)
	assert.Nil(t, item)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrProductNotFound, appErr.Code)
}

// TestUpdateCartItem 测试设置购物车条目数量
func TestUpdateCartItem(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := NewCartService(mockCartRepo, mockProductRepo)

	necklace := &model.Product{ID: 1, Name: "珍珠项链", Price: 100, Stock: 10, Category: model.CategoryNecklaces}
	existing := &model.CartItem{ID: 11, UserID: 7, ProductID: 1, Quantity: 1}

	mockProductRepo.On("FindByID", 1).Return(necklace, nil)
	mockCartRepo.On("FindByUserAndProduct", 7, 1).Return(existing, nil)
	mockCartRepo.On("UpdateQuantity", 7, 1, 3).Return(nil)

	item, err := cartService.UpdateCartItem(7, 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	// 数量必须至少为1
	item, err = cartService.UpdateCartItem(7, 1, 0)
	assert.Nil(t, item)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
}

// TestUpdateCartItemNotFound 测试更新不在购物车中的商品
func TestUpdateCartItemNotFound(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := NewCartService(mockCartRepo, mockProductRepo)

	necklace := &model.Product{ID: 1, Name: "珍珠项链", Price: 100, Stock: 10, Category: model.CategoryNecklaces}
	mockProductRepo.On("FindByID", 1).Return(necklace, nil)
	mockCartRepo.On("FindByUserAndProduct", 7, 1).Return(nil, nil)

	item, err := cartService.UpdateCartItem(7, 1, 2)
	assert.Nil(t, item)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrCartItemNotFound, appErr.Code)
}
