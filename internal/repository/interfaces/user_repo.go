package interfaces

import "github.com/gongye19/OnlineStore/internal/model"

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByPhone(phone string) (*model.User, error)
	UpdatePassword(userID int, passwordHash string) error
	Count() (int, error)
}
