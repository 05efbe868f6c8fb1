package service

import (
	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/repository/interfaces"
)

// ProductService 处理与商品相关的业务逻辑
type ProductService struct {
	productRepo interfaces.ProductRepository
}

// NewProductService 创建一个新的 ProductService 实例
func NewProductService(productRepo interfaces.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ListProducts 返回分页的商品列表和总数
func (s *ProductService) ListProducts(category string, featured *bool, page, pageSize int) ([]*model.Product, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	products, total, err := s.productRepo.List(category, featured, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询商品列表失败", err)
	}
	return products, total, nil
}

// GetProductByID 通过ID获取商品
func (s *ProductService) GetProductByID(id int) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询商品失败", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "商品不存在")
	}
	return product, nil
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(product *model.Product) error {
	if !model.IsValidCategory(product.Category) {
		return errors.New(errors.ErrValidation, "无效的商品分类")
	}
	if product.Stock < 0 {
		return errors.New(errors.ErrValidation, "库存不能为负数")
	}
	if len(product.Images) == 0 {
		product.Images = []string{product.ImageURL}
	}

	if err := s.productRepo.Create(product); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建商品失败", err)
	}
	return nil
}

// UpdateProduct 按字段部分更新商品
func (s *ProductService) UpdateProduct(id int, update *model.ProductUpdate) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Category != nil {
		if !model.IsValidCategory(*update.Category) {
			return nil, errors.New(errors.ErrValidation, "无效的商品分类")
		}
		product.Category = *update.Category
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.Images != nil {
		product.Images = update.Images
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return nil, errors.New(errors.ErrValidation, "库存不能为负数")
		}
		product.Stock = *update.Stock
	}
	if update.Featured != nil {
		product.Featured = *update.Featured
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新商品失败", err)
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(id int) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除商品失败", err)
	}
	return nil
}
