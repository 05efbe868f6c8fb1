package service

import (
	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/repository/interfaces"
)

// lowStockThreshold 低库存报警阈值
const lowStockThreshold = 5

// StatsService 汇总系统统计数据（管理员用）
type StatsService struct {
	userRepo    interfaces.UserRepository
	productRepo interfaces.ProductRepository
	orderRepo   interfaces.OrderRepository
}

func NewStatsService(userRepo interfaces.UserRepository, productRepo interfaces.ProductRepository, orderRepo interfaces.OrderRepository) *StatsService {
	return &StatsService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// GetSystemStats 返回系统统计数据
func (s *StatsService) GetSystemStats() (*model.SystemStats, error) {
	stats := &model.SystemStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计用户数失败", err)
	}
	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计商品数失败", err)
	}
	if stats.TotalOrders, err = s.orderRepo.Count(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计订单数失败", err)
	}
	if stats.TotalRevenue, err = s.orderRepo.SumTotals(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计营收失败", err)
	}
	if stats.PendingOrders, err = s.orderRepo.CountByStatus(model.OrderStatusPending); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计待处理订单失败", err)
	}
	if stats.LowStockProducts, err = s.productRepo.CountLowStock(lowStockThreshold); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "统计低库存商品失败", err)
	}

	return stats, nil
}
