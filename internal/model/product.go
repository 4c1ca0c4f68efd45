package model

import (
	"github.com/shopspring/decimal"
)

// Product is the authoritative stock record. Stock is only ever changed by
// committing or reversing a stock movement / sale, never by a plain product edit.
type Product struct {
	BaseModel
	Barcode     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"barcode" validate:"required"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"default:0" json:"stock"`
	Unit        string          `gorm:"type:varchar(20)" json:"unit"`
	Description string          `gorm:"type:text" json:"description"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}
