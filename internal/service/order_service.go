package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/repository/interfaces"
	"github.com/gongye19/OnlineStore/internal/util"
)

// OrderService 处理与订单相关的业务逻辑
type OrderService struct {
	orderRepo interfaces.OrderRepository
	cartRepo  interfaces.CartRepository
}

// NewOrderService 创建一个新的 OrderService 实例
func NewOrderService(orderRepo interfaces.OrderRepository, cartRepo interfaces.CartRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// Checkout 把用户的购物车转换为订单：校验库存、按当前价格快照计算总价，
// 然后由仓库层在单个事务内落库。任何一行库存不足则不创建订单。
func (s *OrderService) Checkout(userID int, customerName, shippingPhone, shippingAddress string) (*model.Order, error) {
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询购物车失败", err)
	}
	if len(cartItems) == 0 {
		return nil, errors.New(errors.ErrEmptyCart, "购物车为空")
	}

	// 校验库存并按当前价格计算总价
	var total float64
	orderItems := make([]*model.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		product := item.Product
		if product.Stock < item.Quantity {
			return nil, errors.New(errors.ErrInsufficientStock,
				fmt.Sprintf("商品 %s 库存不足", product.Name))
		}
		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, &model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price, // 快照价格
			Product:   product,
		})
	}

	order := &model.Order{
		UserID:          userID,
		CustomerName:    customerName,
		ShippingPhone:   shippingPhone,
		ShippingAddress: shippingAddress,
		Total:           total,
	}

	// 订单创建、条目写入、库存扣减和清空购物车在同一事务内完成
	if err := s.orderRepo.CreateOrderFromCart(order, orderItems); err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrDatabase, "创建订单失败", err)
	}

	util.Logger.Info("结算完成",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", userID),
		zap.Float64("total", order.Total))
	return order, nil
}

// GetOrderByID 获取订单详情。requesterID 为请求者，非管理员只能看自己的订单。
func (s *OrderService) GetOrderByID(orderID, requesterID int, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询订单失败", err)
	}
	if order == nil || (!isAdmin && order.UserID != requesterID) {
		return nil, errors.New(errors.ErrOrderNotFound, "订单不存在")
	}
	return order, nil
}

// ListOrders 返回订单列表，管理员看全部，普通用户看自己的
func (s *OrderService) ListOrders(requesterID int, isAdmin bool) ([]*model.Order, error) {
	var orders []*model.Order
	var err error
	if isAdmin {
		orders, err = s.orderRepo.ListAll()
	} else {
		orders, err = s.orderRepo.ListByUser(requesterID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询订单列表失败", err)
	}
	return orders, nil
}

// UpdateOrderStatus 更新订单状态，只校验枚举合法性，不校验状态迁移
func (s *OrderService) UpdateOrderStatus(orderID int, status string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, errors.New(errors.ErrValidation, "无效的订单状态")
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询订单失败", err)
	}
	if order == nil {
		return nil, errors.New(errors.ErrOrderNotFound, "订单不存在")
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrDatabase, "更新订单状态失败", err)
	}

	order.Status = status
	return order, nil
}

// OrderServiceInterface 定义了订单处理器依赖的服务方法
type OrderServiceInterface interface {
	Checkout(userID int, customerName, shippingPhone, shippingAddress string) (*model.Order, error)
	GetOrderByID(orderID, requesterID int, isAdmin bool) (*model.Order, error)
	ListOrders(requesterID int, isAdmin bool) ([]*model.Order, error)
	UpdateOrderStatus(orderID int, status string) (*model.Order, error)
}

var _ OrderServiceInterface = (*OrderService)(nil)
