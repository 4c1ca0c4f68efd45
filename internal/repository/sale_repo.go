package repository

import (
	"time"

	"kasir-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	CreateInTx(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByInvoice(invoice string) (*model.Sale, error)
	FindAll() ([]model.Sale, error)
	FindBySession(sessionID uuid.UUID) ([]model.Sale, error)

	// Aggregations for the reporting layer.
	GetDailyTotals(startDate, endDate time.Time) ([]SalesBucket, error)
	GetMonthlyTotals(startDate, endDate time.Time) ([]SalesBucket, error)
	GetShiftTotals(startDate, endDate time.Time) ([]ShiftSales, error)
	GetDashboardStats() (*DashboardStats, error)
}

// SalesBucket is one aggregation bucket (a day or a month) of committed sales.
type SalesBucket struct {
	Bucket string          `json:"bucket"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// ShiftSales aggregates sales per shift via the cashier sessions they were
// committed under. Session-less sales (admin/manager) are excluded.
type ShiftSales struct {
	ShiftID   uuid.UUID       `json:"shift_id"`
	ShiftName string          `json:"shift_name"`
	Count     int64           `json:"count"`
	Total     decimal.Decimal `json:"total"`
}

// DashboardStats is the overview block on the admin dashboard.
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	LowStockCount  int64           `json:"low_stock_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
	SalesToday     decimal.Decimal `json:"sales_today"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) CreateInTx(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Lines").Preload("Lines.Product").Preload("Session").Preload("CreatedByUser").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByInvoice(invoice string) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Lines").First(&sale, "invoice = ?", invoice).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Lines").Preload("CreatedByUser").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindBySession(sessionID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Lines").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) GetDailyTotals(startDate, endDate time.Time) ([]SalesBucket, error) {
	return r.bucketTotals("DATE(date)", startDate, endDate)
}

func (r *saleRepo) GetMonthlyTotals(startDate, endDate time.Time) ([]SalesBucket, error) {
	return r.bucketTotals("TO_CHAR(date, 'YYYY-MM')", startDate, endDate)
}

func (r *saleRepo) bucketTotals(bucketExpr string, startDate, endDate time.Time) ([]SalesBucket, error) {
	var results []SalesBucket

	rows, err := r.db.Model(&model.Sale{}).
		Select(bucketExpr+" as bucket, COUNT(*) as count, COALESCE(SUM(total), 0) as total").
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Group(bucketExpr).
		Order("bucket ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b SalesBucket
		if err := rows.Scan(&b.Bucket, &b.Count, &b.Total); err != nil {
			return nil, err
		}
		results = append(results, b)
	}

	return results, nil
}

func (r *saleRepo) GetShiftTotals(startDate, endDate time.Time) ([]ShiftSales, error) {
	var results []ShiftSales

	rows, err := r.db.Model(&model.Sale{}).
		Select(`shifts.id, shifts.name, COUNT(sales.id) as count, COALESCE(SUM(sales.total), 0) as total`).
		Joins("JOIN cashier_sessions ON cashier_sessions.id = sales.session_id").
		Joins("JOIN shifts ON shifts.id = cashier_sessions.shift_id").
		Where("sales.date BETWEEN ? AND ?", startDate, endDate).
		Group("shifts.id, shifts.name").
		Order("shifts.name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s ShiftSales
		if err := rows.Scan(&s.ShiftID, &s.ShiftName, &s.Count, &s.Total); err != nil {
			return nil, err
		}
		results = append(results, s)
	}

	return results, nil
}

func (r *saleRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Product{}).Where("stock < ?", 10).Count(&stats.LowStockCount)
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock * price), 0)").Scan(&stats.TotalValuation)

	today := time.Now().Truncate(24 * time.Hour)
	r.db.Model(&model.Sale{}).
		Where("date >= ?", today).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.SalesToday)

	return &stats, nil
}
