package mysql

import (
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/util"
)

// cartRepository 实现了 CartRepository 接口
type cartRepository struct {
	db *sql.DB
}

// NewCartRepository 创建一个新的 cartRepository 实例
func NewCartRepository(db *sql.DB) *cartRepository {
	return &cartRepository{db}
}

// ListByUser 返回用户的购物车条目，带商品信息
func (r *cartRepository) ListByUser(userID int) ([]*model.CartItem, error) {
	query := `SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
                     p.id, p.name, p.price, p.category, p.description, p.image_url, p.images, p.stock, p.featured
              FROM cart_items ci
              JOIN products p ON ci.product_id = p.id
              WHERE ci.user_id = ?
              ORDER BY ci.created_at`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		util.Logger.Error("查询购物车失败", zap.Error(err), zap.Int("user_id", userID))
		return nil, err
	}
	defer rows.Close()

	var items []*model.CartItem
	for rows.Next() {
		var item model.CartItem
		var p model.Product
		var imagesJSON string
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
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
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// FindByUserAndProduct 查找用户购物车中的指定商品条目，未找到返回 nil
func (r *cartRepository) FindByUserAndProduct(userID, productID int) (*model.CartItem, error) {
	query := `SELECT id, user_id, product_id, quantity, created_at, updated_at
              FROM cart_items WHERE user_id = ? AND product_id = ?`

	var item model.CartItem
	err := r.db.QueryRow(query, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 新增购物车条目
func (r *cartRepository) Create(item *model.CartItem) error {
	query := `INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)`
	result, err := r.db.Exec(query, item.UserID, item.ProductID, item.Quantity)
	if err != nil {
		util.Logger.Error("新增购物车条目失败", zap.Error(err),
			zap.Int("user_id", item.UserID), zap.Int("product_id", item.ProductID))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = int(id)
	item.CreatedAt = time.Now()
	return nil
}

// UpdateQuantity 设置购物车条目的数量
func (r *cartRepository) UpdateQuantity(userID, productID, quantity int) error {
	_, err := r.db.Exec(`UPDATE cart_items SET quantity = ?, updated_at = ? WHERE user_id = ? AND product_id = ?`,
		quantity, time.Now(), userID, productID)
	return err
}

// Delete 删除购物车条目
func (r *cartRepository) Delete(userID, productID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		util.Logger.Error("删除购物车条目失败", zap.Error(err),
			zap.Int("user_id", userID), zap.Int("product_id", productID))
	}
	return err
}
