package interfaces

import "github.com/gongye19/OnlineStore/internal/model"

// CartRepository 接口定义了购物车仓库应该实现的方法
type CartRepository interface {
	ListByUser(userID int) ([]*model.CartItem, error)
	FindByUserAndProduct(userID, productID int) (*model.CartItem, error)
	Create(item *model.CartItem) error
	UpdateQuantity(userID, productID, quantity int) error
	Delete(userID, productID int) error
}
