package model

import "time"

// 订单状态枚举
const (
	OrderStatusPending           = "Pending"
	OrderStatusProcessing        = "Processing"
	OrderStatusShipped           = "Shipped"
	OrderStatusDelivered         = "Delivered"
	OrderStatusCancelled         = "Cancelled"
	OrderStatusReturnRequested   = "Return Requested"
	OrderStatusExchangeRequested = "Exchange Requested"
)

// ValidOrderStatuses 所有合法的订单状态
var ValidOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturnRequested,
	OrderStatusExchangeRequested,
}

// IsValidOrderStatus 检查订单状态是否合法
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order 订单模型，total 在创建后不可变
type Order struct {
	ID              int          `json:"id"`
	UserID          int          `json:"user_id"`
	CustomerName    string       `json:"customer_name"`
	ShippingPhone   string       `json:"shipping_phone"`
	ShippingAddress string       `json:"shipping_address"`
	Total           float64      `json:"total"`
	Status          string       `json:"status"`
	Items           []*OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// OrderItem 订单条目，price 为下单时的快照价格
type OrderItem struct {
	ID        int      `json:"id"`
	OrderID   int      `json:"order_id"`
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}
