package interfaces

import "github.com/gongye19/OnlineStore/internal/model"

// OrderRepository 接口定义了订单仓库应该实现的方法
type OrderRepository interface {
	// CreateOrderFromCart 在单个事务内创建订单、写入订单条目快照、
	// 扣减库存并清空该用户的购物车。任何一步失败则整体回滚。
	CreateOrderFromCart(order *model.Order, items []*model.OrderItem) error
	FindByID(id int) (*model.Order, error)
	ListByUser(userID int) ([]*model.Order, error)
	ListAll() ([]*model.Order, error)
	UpdateStatus(orderID int, status string) error
	Count() (int, error)
	CountByStatus(status string) (int, error)
	SumTotals() (float64, error)
}
