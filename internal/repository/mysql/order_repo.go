package mysql

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/util"
)

// orderRepository 实现了 OrderRepository 接口
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository 创建一个新的 orderRepository 实例
func NewOrderRepository(db *sql.DB) *orderRepository {
	return &orderRepository{db}
}

// CreateOrderFromCart 在单个事务内完成下单：创建订单、写入订单条目快照、
// 扣减库存、清空购物车。库存扣减使用条件更新（stock >= quantity），
// 并发下单同一商品时由数据库行锁串行化，库存不足则整体回滚。
func (r *orderRepository) CreateOrderFromCart(order *model.Order, items []*model.OrderItem) error {
	// 开始事务
	tx, err := r.db.Begin()
	if err != nil {
		util.Logger.Error("开始事务失败", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	// 创建订单
	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO orders (user_id, customer_name, shipping_phone, shipping_address, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.CustomerName, order.ShippingPhone, order.ShippingAddress,
		order.Total, model.OrderStatusPending, now, now)
	if err != nil {
		util.Logger.Error("创建订单失败", zap.Error(err))
		return fmt.Errorf("failed to create order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取订单 ID 失败", zap.Error(err))
		return fmt.Errorf("failed to get order ID: %w", err)
	}
	order.ID = int(orderID)
	order.Status = model.OrderStatusPending
	order.CreatedAt = now

	for _, item := range items {
		// 写入订单条目，price 为当前快照价格
		itemResult, err := tx.Exec(`
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			util.Logger.Error("创建订单条目失败", zap.Error(err),
				zap.Int("product_id", item.ProductID))
			return fmt.Errorf("failed to create order item: %w", err)
		}
		itemID, err := itemResult.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get order item ID: %w", err)
		}
		item.ID = int(itemID)
		item.OrderID = order.ID

		// 条件扣减库存，提交时再次校验，防止加购和结算之间的竞争
		stockResult, err := tx.Exec(`
			UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?`,
			item.Quantity, now, item.ProductID, item.Quantity)
		if err != nil {
			util.Logger.Error("扣减库存失败", zap.Error(err),
				zap.Int("product_id", item.ProductID))
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		affected, err := stockResult.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			util.Logger.Warn("提交时库存不足，订单回滚",
				zap.Int("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity))
			name := ""
			if item.Product != nil {
				name = item.Product.Name
			}
			return errors.New(errors.ErrInsufficientStock, fmt.Sprintf("商品 %s 库存不足", name))
		}
	}

	// 清空购物车
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = ?`, order.UserID); err != nil {
		util.Logger.Error("清空购物车失败", zap.Error(err), zap.Int("user_id", order.UserID))
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	// 提交事务
	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	order.Items = items
	util.Logger.Info("订单创建成功",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", order.UserID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(items)))
	return nil
}

// FindByID 通过ID查找订单，带条目和商品信息，未找到返回 nil
func (r *orderRepository) FindByID(id int) (*model.Order, error) {
	query := `SELECT id, user_id, customer_name, shipping_phone, shipping_address, total, status, created_at, updated_at
              FROM orders WHERE id = ?`

	var order model.Order
	err := r.db.QueryRow(query, id).Scan(
		&order.ID, &order.UserID, &order.CustomerName, &order.ShippingPhone,
		&order.ShippingAddress, &order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.loadItems([]int{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return &order, nil
}

// ListByUser 返回用户的订单列表，按创建时间倒序
func (r *orderRepository) ListByUser(userID int) ([]*model.Order, error) {
	query := `SELECT id, user_id, customer_name, shipping_phone, shipping_address, total, status, created_at, updated_at
              FROM orders WHERE user_id = ? ORDER BY created_at DESC`
	return r.list(query, userID)
}

// ListAll 返回全部订单，按创建时间倒序（管理员用）
func (r *orderRepository) ListAll() ([]*model.Order, error) {
	query := `SELECT id, user_id, customer_name, shipping_phone, shipping_address, total, status, created_at, updated_at
              FROM orders ORDER BY created_at DESC`
	return r.list(query)
}

func (r *orderRepository) list(query string, args ...interface{}) ([]*model.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*model.Order
	var orderIDs []int
	byID := make(map[int]*model.Order)
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID, &order.UserID, &order.CustomerName, &order.ShippingPhone,
			&order.ShippingAddress, &order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order)
		orderIDs = append(orderIDs, order.ID)
		byID[order.ID] = &order
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(orderIDs)
	if err != nil {
		return nil, err
	}
	for orderID, orderItems := range items {
		byID[orderID].Items = orderItems
	}
	return orders, nil
}

// loadItems 批量加载订单条目及商品信息
func (r *orderRepository) loadItems(orderIDs []int) (map[int][]*model.OrderItem, error) {
	query := `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
                     p.id, p.name, p.price, p.category, p.description, p.image_url, p.images, p.stock, p.featured
              FROM order_items oi
              JOIN products p ON oi.product_id = p.id
              WHERE oi.order_id IN (?` + repeatPlaceholder(len(orderIDs)-1) + `)`

	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int][]*model.OrderItem)
	for rows.Next() {
		var item model.OrderItem
		var p model.Product
		var imagesJSON string
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Description,
			&p.ImageURL, &imagesJSON, &p.Stock, &p.Featured,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(imagesJSON), &p.Images); err != nil {
			p.Images = []string{p.ImageURL}
		}
		item.Product = &p
		result[item.OrderID] = append(result[item.OrderID], &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func repeatPlaceholder(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += ", ?"
	}
	return s
}

// UpdateStatus 更新订单状态
func (r *orderRepository) UpdateStatus(orderID int, status string) error {
	// 设置相同状态时 MySQL 报告 0 行受影响，存在性由服务层保证
	_, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), orderID)
	if err != nil {
		util.Logger.Error("更新订单状态失败", zap.Error(err), zap.Int("order_id", orderID))
		return err
	}
	util.Logger.Info("订单状态已更新", zap.Int("order_id", orderID), zap.String("status", status))
	return nil
}

// Count 返回订单总数
func (r *orderRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus 返回指定状态的订单数量
func (r *orderRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM orders WHERE status = ?", status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotals 返回全部订单金额之和
func (r *orderRepository) SumTotals() (float64, error) {
	var total sql.NullFloat64
	err := r.db.QueryRow("SELECT SUM(total) FROM orders").Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}
