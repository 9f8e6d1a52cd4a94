package store

import (
	"github.com/shalliecode/volydog/internal/models"
)

type DashboardStats struct {
	TotalOrders   int
	PendingOrders int
	TotalProducts int
	TotalUsers    int
	RecentOrders  []models.Order
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalOrders, err = s.CountOrders(); err != nil {
		return nil, err
	}
	if stats.PendingOrders, err = s.CountOrdersByStatus(models.OrderPending); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.CountProducts(); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.CountUsers(); err != nil {
		return nil, err
	}

	recent, err := s.GetRecentOrders(10)
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = recent

	return stats, nil
}
