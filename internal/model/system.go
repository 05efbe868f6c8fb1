package model

// SystemStats 系统统计数据
type SystemStats struct {
	TotalUsers       int     `json:"total_users"`
	TotalProducts    int     `json:"total_products"`
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	PendingOrders    int     `json:"pending_orders"`
	LowStockProducts int     `json:"low_stock_products"`
}
