package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
)

// TestCreateProduct 测试创建商品的分类和库存校验
func TestCreateProduct(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	productService := NewProductService(mockProductRepo)

	// 无效分类
	err := productService.CreateProduct(&model.Product{Name: "水晶摆件", Price: 10, Category: "Ornaments"})
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)

	// 负库存
	err = productService.CreateProduct(&model.Product{Name: "银戒指", Price: 50, Category: model.CategoryRings, Stock: -1})
	appErr, ok = err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	mockProductRepo.AssertNotCalled(t, "Create", mock.Anything)

	// 正常创建时 Images 默认为主图
	mockProductRepo.On("Create", mock.AnythingOfType("*model.Product")).Return(nil)
	product := &model.Product{Name: "银戒指", Price: 50, Category: model.CategoryRings, ImageURL: "http://example.com/ring.jpg", Stock: 5}
	err = productService.CreateProduct(product)
	assert.NoError(t, err)
	assert.Equal(t, []string{"http://example.com/ring.jpg"}, product.Images)
	mockProductRepo.AssertExpectations(t)
}

// TestGetProductByID 测试商品不存在的情况
func TestGetProductByID(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	productService := NewProductService(mockProductRepo)

	mockProductRepo.On("FindByID", 99).Return(nil, nil)

	product, err := productService.GetProductByID(99)
	assert.Nil(t, product)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrProductNotFound, appErr.Code)
}

// TestUpdateProduct 测试部分更新只修改给定字段
func TestUpdateProduct(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	productService := NewProductService(mockProductRepo)

	existing := &model.Product{
		ID:       1,
		Name:     "珍珠项链",
		Price:    100,
		Category: model.CategoryNecklaces,
		Stock:    10,
	}
	mockProductRepo.On("FindByID", 1).Return(existing, nil)
	mockProductRepo.On("Update", mock.AnythingOfType("*model.Product")).Return(nil)

	newPrice := 120.0
	product, err := productService.UpdateProduct(1, &model.ProductUpdate{Price: &newPrice})

	assert.NoError(t, err)
	assert.Equal(t, 120.0, product.Price)
	assert.Equal(t, "珍珠项链", product.Name)
	assert.Equal(t, model.CategoryNecklaces, product.Category)
	mockProductRepo.AssertExpectations(t)
}

// TestListProducts 测试分页参数的默认值
func TestListProducts(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	productService := NewProductService(mockProductRepo)

	mockProductRepo.On("List", "", (*bool)(nil), 1, 10).Return([]*model.Product{}, 0, nil)

	_, total, err := productService.ListProducts("", nil, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)
	mockProductRepo.AssertExpectations(t)
}
