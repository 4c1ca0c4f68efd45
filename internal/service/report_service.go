package service

import (
	"time"

	"kasir-backend/internal/repository"
)

// ReportService is the read-only aggregation layer over sales, sessions and
// movements. Thin by design: every method is a single repository query.
type ReportService interface {
	GetDailySales(days int) ([]repository.SalesBucket, error)
	GetMonthlySales(months int) ([]repository.SalesBucket, error)
	GetShiftSales(days int) ([]repository.ShiftSales, error)
	GetDashboardStats() (*repository.DashboardStats, error)
	GetStockFlow(days int) ([]repository.DailyFlow, error)
}

type reportService struct {
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
}

func NewReportService(saleRepo repository.SaleRepository, movementRepo repository.MovementRepository) ReportService {
	return &reportService{saleRepo: saleRepo, movementRepo: movementRepo}
}

func (s *reportService) GetDailySales(days int) ([]repository.SalesBucket, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.saleRepo.GetDailyTotals(startDate, endDate)
}

func (s *reportService) GetMonthlySales(months int) ([]repository.SalesBucket, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, -months, 0)
	return s.saleRepo.GetMonthlyTotals(startDate, endDate)
}

func (s *reportService) GetShiftSales(days int) ([]repository.ShiftSales, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.saleRepo.GetShiftTotals(startDate, endDate)
}

func (s *reportService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.saleRepo.GetDashboardStats()
}

func (s *reportService) GetStockFlow(days int) ([]repository.DailyFlow, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.movementRepo.GetDailyFlow(startDate, endDate)
}
