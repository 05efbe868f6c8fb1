package mysql

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/util"
)

// productRepository 实现了 ProductRepository 接口
type productRepository struct {
	db *sql.DB
}

// NewProductRepository 创建一个新的 productRepository 实例
func NewProductRepository(db *sql.DB) *productRepository {
	return &productRepository{db}
}

// Create 创建一个新商品
func (r *productRepository) Create(product *model.Product) error {
	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return err
	}

	query := `INSERT INTO products (name, price, category, description, image_url, images, stock, featured)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, product.Name, product.Price, product.Category,
		product.Description, product.ImageURL, string(imagesJSON), product.Stock, product.Featured)
	if err != nil {
		util.Logger.Error("创建商品失败", zap.Error(err), zap.String("name", product.Name))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	product.ID = int(id)
	product.CreatedAt = time.Now()
	util.Logger.Info("商品创建成功", zap.Int("product_id", product.ID))
	return nil
}

// FindByID 通过ID查找商品，未找到返回 nil
func (r *productRepository) FindByID(id int) (*model.Product, error) {
	query := `SELECT id, name, price, category, description, image_url, images, stock, featured, created_at, updated_at
              FROM products WHERE id = ?`

	var p model.Product
	var imagesJSON string
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Category, &p.Description,
		&p.ImageURL, &imagesJSON, &p.Stock, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(imagesJSON), &p.Images); err != nil {
		util.Logger.Warn("解析商品图片列表失败", zap.Error(err), zap.Int("product_id", p.ID))
		p.Images = []string{p.ImageURL}
	}
	return &p, nil
}

// List 返回分页的商品列表，支持分类和精选过滤，按创建时间倒序
func (r *productRepository) List(category string, featured *bool, page, pageSize int) ([]*model.Product, int, error) {
	baseQuery := `SELECT id, name, price, category, description, image_url, images, stock, featured, created_at, updated_at
                  FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`

	var params []interface{}
	var conditions []string

	if category != "" && category != "All" {
		conditions = append(conditions, ` AND category = ?`)
		params = append(params, category)
	}
	if featured != nil {
		conditions = append(conditions, ` AND featured = ?`)
		params = append(params, *featured)
	}

	if len(conditions) > 0 {
		cond := strings.Join(conditions, "")
		baseQuery += cond
		countQuery += cond
	}

	// 获取总数
	var total int
	if err := r.db.QueryRow(countQuery, params...).Scan(&total); err != nil {
		return nil, 0, err
	}

	baseQuery += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	params = append(params, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(baseQuery, params...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		var p model.Product
		var imagesJSON string
		err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Description,
			&p.ImageURL, &imagesJSON, &p.Stock, &p.Featured, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(imagesJSON), &p.Images); err != nil {
			p.Images = []string{p.ImageURL}
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Update 更新商品信息
func (r *productRepository) Update(product *model.Product) error {
	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return err
	}

	query := `UPDATE products
              SET name = ?, price = ?, category = ?, description = ?,
                  image_url = ?, images = ?, stock = ?, featured = ?, updated_at = ?
              WHERE id = ?`
	_, err = r.db.Exec(query, product.Name, product.Price, product.Category,
		product.Description, product.ImageURL, string(imagesJSON),
		product.Stock, product.Featured, time.Now(), product.ID)
	if err != nil {
		util.Logger.Error("更新商品失败", zap.Error(err), zap.Int("product_id", product.ID))
	}
	return err
}

// Delete 删除商品
func (r *productRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除商品失败", zap.Error(err), zap.Int("product_id", id))
		return err
	}
	util.Logger.Info("商品删除成功", zap.Int("product_id", id))
	return nil
}

// Count 返回商品总数
func (r *productRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountLowStock 返回库存低于阈值的商品数量
func (r *productRepository) CountLowStock(threshold int) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products WHERE stock < ?", threshold).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
