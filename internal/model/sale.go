package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a committed POS transaction. Invariant:
// ReturnAmount = MoneyReceived - (sum(lines.TotalPrice) - Discount).
// A negative ReturnAmount means the customer is short; that is recorded,
// not rejected.
type Sale struct {
	BaseModel
	Invoice      string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice"`
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
	CustomerName string    `gorm:"type:varchar(255)" json:"customer_name"`
	Casher       string    `gorm:"type:varchar(255)" json:"casher"`

	// Weak reference to the committing cashier's session. NULL for admin and
	// manager actors, who transact without a session.
	SessionID *uuid.UUID      `gorm:"type:uuid;index" json:"session_id,omitempty"`
	Session   *CashierSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	MoneyReceived decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"money_received"`
	ReturnAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"return_amount"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method"` // CASH, TRANSFER, QRIS

	Lines []SaleLine `gorm:"foreignKey:SaleID" json:"lines"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}

// SaleLine is one cart line snapshotted at commit time.
type SaleLine struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	SaleID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Barcode    string          `gorm:"type:varchar(50);not null" json:"barcode"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Discount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
}

func (SaleLine) TableName() string {
	return "sale_lines"
}
