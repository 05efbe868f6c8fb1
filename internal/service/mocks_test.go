package service

import (
	"github.com/stretchr/testify/mock"

	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/repository/interfaces"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(phone string) (*model.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(userID int, passwordHash string) error {
	args := m.Called(userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// MockProductRepository 是 ProductRepository 接口的模拟实现
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(id int) (*model.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(category string, featured *bool, page, pageSize int) ([]*model.Product, int, error) {
	args := m.Called(category, featured, page, pageSize)
	return args.Get(0).([]*model.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Update(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) CountLowStock(threshold int) (int, error) {
	args := m.Called(threshold)
	return args.Int(0), args.Error(1)
}

// MockCartRepository 是 CartRepository 接口的模拟实现
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(userID int) ([]*model.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByUserAndProduct(userID, productID int) (*model.CartItem, error) {
	args := m.Called(userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) Create(item *model.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(userID, productID, quantity int) error {
	args := m.Called(userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(userID, productID int) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

// MockOrderRepository 是 OrderRepository 接口的模拟实现
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrderFromCart(order *model.Order, items []*model.OrderItem) error {
	args := m.Called(order, items)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(id int) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID int) ([]*model.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll() ([]*model.Order, error) {
	args := m.Called()
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(orderID int, status string) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(status string) (int, error) {
	args := m.Called(status)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) SumTotals() (float64, error) {
	args := m.Called()
	return args.Get(0).(float64), args.Error(1)
}

// 确保所有模拟类型都实现了对应接口
var (
	_ interfaces.UserRepository    = (*MockUserRepository)(nil)
	_ interfaces.ProductRepository = (*MockProductRepository)(nil)
	_ interfaces.CartRepository    = (*MockCartRepository)(nil)
	_ interfaces.OrderRepository   = (*MockOrderRepository)(nil)
)
