package interfaces

import "github.com/gongye19/OnlineStore/internal/model"

// ProductRepository 接口定义了商品仓库应该实现的方法
type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id int) (*model.Product, error)
	List(category string, featured *bool, page, pageSize int) ([]*model.Product, int, error)
	Update(product *model.Product) error
	Delete(id int) error
	Count() (int, error)
	CountLowStock(threshold int) (int, error)
}
