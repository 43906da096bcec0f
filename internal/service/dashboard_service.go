package service

import (
	"time"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
)

const lowStockThreshold = 10

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
}

// DashboardStats is the admin overview snapshot.
type DashboardStats struct {
	TotalProducts  int64                       `json:"total_products"`
	LowStockCount  int64                       `json:"low_stock_count"`
	TotalValuation int64                       `json:"total_valuation"` // cents
	Revenue        int64                       `json:"revenue"`         // cents
	OrdersByStatus map[model.OrderStatus]int64 `json:"orders_by_status"`
	RecentOrders   []model.Order               `json:"recent_orders"`
}

type dashboardService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	invRepo     repository.InventoryRepository
}

func NewDashboardService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, invRepo repository.InventoryRepository) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		invRepo:     invRepo,
	}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalProducts, err = s.productRepo.CountAll(); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountLowStock(lowStockThreshold); err != nil {
		return nil, err
	}
	if stats.TotalValuation, err = s.productRepo.TotalValuation(); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.orderRepo.Revenue(); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = s.orderRepo.CountByStatus(); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.orderRepo.Recent(10); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.invRepo.GetStockMovement(startDate, endDate)
}
