package model

import "time"

// 商品分类枚举
const (
	CategoryNecklaces = "Necklaces"
	CategoryBracelets = "Bracelets"
	CategoryEarrings  = "Earrings"
	CategoryRings     = "Rings"
)

// ValidCategories 所有合法的商品分类
var ValidCategories = []string{
	CategoryNecklaces,
	CategoryBracelets,
	CategoryEarrings,
	CategoryRings,
}

// IsValidCategory 检查分类是否合法
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ProductUpdate 商品的部分更新，nil 字段表示不修改
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock"`
	Featured    *bool    `json:"featured"`
}

// Product 商品模型
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Images      []string  `json:"images"` // 数据库中以JSON数组存储
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
