package repository

import (
	"time"

	"kasir-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementRepository interface {
	CreateInTx(tx *gorm.DB, movement *model.StockMovement) error
	FindByID(id uuid.UUID) (*model.StockMovement, error)
	FindAll(direction model.MovementDirection) ([]model.StockMovement, error)
	// LockByID loads a movement header and its lines FOR UPDATE so an
	// edit/delete reversal cannot race with another reversal of the same record.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.StockMovement, error)
	ReplaceLinesInTx(tx *gorm.DB, movement *model.StockMovement, lines []model.MovementLine) error
	DeleteInTx(tx *gorm.DB, id uuid.UUID, deletedBy string) error

	// GetDailyFlow aggregates IN/OUT quantities per day for the dashboard chart.
	GetDailyFlow(startDate, endDate time.Time) ([]DailyFlow, error)
}

// DailyFlow is one day of aggregated stock movement for chart data.
type DailyFlow struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

func (r *movementRepo) CreateInTx(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *movementRepo) FindByID(id uuid.UUID) (*model.StockMovement, error) {
	var movement model.StockMovement
	err := r.db.Preload("Lines").Preload("Lines.Product").Preload("CreatedByUser").
		First(&movement, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *movementRepo) FindAll(direction model.MovementDirection) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Preload("Lines").Preload("Lines.Product").
		Where("direction = ?", direction).
		Order("date DESC, created_at DESC").
		Find(&movements).Error
	return movements, err
}

func (r *movementRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.StockMovement, error) {
	var movement model.StockMovement
	// Lock the header row only; lines are owned by the header and loaded after.
	err := tx.Raw(
		`SELECT * FROM stock_movements WHERE id = ? AND deleted_at IS NULL FOR UPDATE`, id,
	).Scan(&movement).Error
	if err != nil {
		return nil, err
	}
	if movement.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := tx.Where("movement_id = ?", id).Find(&movement.Lines).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *movementRepo) ReplaceLinesInTx(tx *gorm.DB, movement *model.StockMovement, lines []model.MovementLine) error {
	if err := tx.Where("movement_id = ?", movement.ID).Delete(&model.MovementLine{}).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].MovementID = movement.ID
	}
	movement.Lines = lines
	if err := tx.Create(&lines).Error; err != nil {
		return err
	}
	return tx.Model(&model.StockMovement{}).Where("id = ?", movement.ID).
		Updates(movementHeaderUpdates(movement)).Error
}

// movementHeaderUpdates lists the header columns an edit rewrites. The editor
// becomes the new updated_by so the audit trail names who touched the record.
func movementHeaderUpdates(movement *model.StockMovement) map[string]interface{} {
	return map[string]interface{}{
		"date":       movement.Date,
		"remark":     movement.Remark,
		"updated_by": movement.UpdatedBy,
	}
}

func (r *movementRepo) DeleteInTx(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	return tx.Model(&model.StockMovement{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *movementRepo) GetDailyFlow(startDate, endDate time.Time) ([]DailyFlow, error) {
	var results []DailyFlow

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(stock_movements.date) as date,
			COALESCE(SUM(CASE WHEN direction = 'IN' THEN movement_lines.quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN direction = 'OUT' THEN movement_lines.quantity ELSE 0 END), 0) as outbound
		`).
		Joins("JOIN movement_lines ON movement_lines.movement_id = stock_movements.id").
		Where("stock_movements.date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(stock_movements.date)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyFlow
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
