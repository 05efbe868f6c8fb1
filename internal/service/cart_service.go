package service

import (
	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/repository/interfaces"
)

// CartService 处理与购物车相关的业务逻辑
type CartService struct {
	cartRepo    interfaces.CartRepository
	productRepo interfaces.ProductRepository
}

// NewCartService 创建一个新的 CartService 实例
func NewCartService(cartRepo interfaces.CartRepository, productRepo interfaces.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 返回用户的购物车
func (s *CartService) GetCart(userID int) ([]*model.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询购物车失败", err)
	}
	return items, nil
}

// AddToCart 添加商品到购物车。已存在则累加数量，数量受当前库存限制。
func (s *CartService) AddToCart(userID, productID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询商品失败", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "商品不存在")
	}
	if product.Stock < quantity {
		return nil, errors.New(errors.ErrInsufficientStock, "库存不足")
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询购物车失败", err)
	}

	if existing != nil {
		// 合并为一条记录，累加数量
		newQuantity := existing.Quantity + quantity
		if product.Stock < newQuantity {
			return nil, errors.New(errors.ErrInsufficientStock, "库存不足")
		}
		if err := s.cartRepo.UpdateQuantity(userID, productID, newQuantity); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "更新购物车失败", err)
		}
		existing.Quantity = newQuantity
		existing.Product = product
		return existing, nil
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Product:   product,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "新增购物车条目失败", err)
	}
	return item, nil
}

// UpdateCartItem 设置购物车条目的绝对数量，重新校验库存
func (s *CartService) UpdateCartItem(userID, productID, quantity int) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, errors.New(errors.ErrValidation, "数量至少为1")
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询商品失败", err)
	}
	if product == nil {
		return nil, errors.New(errors.ErrProductNotFound, "商品不存在")
	}
	if product.Stock < quantity {
		return nil, errors.New(errors.ErrInsufficientStock, "库存不足")
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询购物车失败", err)
	}
	if existing == nil {
		return nil, errors.New(errors.ErrCartItemNotFound, "购物车条目不存在")
	}

	if err := s.cartRepo.UpdateQuantity(userID, productID, quantity); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新购物车失败", err)
	}
	existing.Quantity = quantity
	existing.Product = product
	return existing, nil
}

// RemoveFromCart 从购物车删除商品
func (s *CartService) RemoveFromCart(userID, productID int) error {
	if err := s.cartRepo.Delete(userID, productID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除购物车条目失败", err)
	}
	return nil
}
