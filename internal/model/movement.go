package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// StockMovement is an inventory ledger entry: receiving (IN) or a non-POS
// adjustment (OUT). The header is immutable history once committed; edit and
// delete flows must reverse the stock delta before applying a new one.
type StockMovement struct {
	BaseModel
	TransactionNo string            `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_no"`
	Direction     MovementDirection `gorm:"type:varchar(10);not null;index" json:"direction" validate:"required,oneof=IN OUT"`
	Date          time.Time         `gorm:"type:date;not null;index" json:"date"`
	Remark        string            `gorm:"type:text" json:"remark"`
	Casher        string            `gorm:"type:varchar(255)" json:"casher"`

	Lines []MovementLine `gorm:"foreignKey:MovementID" json:"lines"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// MovementLine is one product/quantity/price tuple within a movement.
// TotalPrice = UnitPrice*Quantity - Discount.
type MovementLine struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	MovementID uuid.UUID       `gorm:"type:uuid;not null;index" json:"movement_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Discount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
}

func (MovementLine) TableName() string {
	return "movement_lines"
}
