package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// CashierSession brackets one cashier's work period on one shift between an
// opening and a closing cash count. At most one OPEN session may exist per
// user; this is enforced by a partial unique index on (user_id) WHERE
// status = 'OPEN' in addition to the application-level check.
type CashierSession struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id" validate:"uuid_required"`
	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	ShiftID uuid.UUID `gorm:"type:uuid;not null" json:"shift_id" validate:"uuid_required"`
	Shift   *Shift    `gorm:"foreignKey:ShiftID" json:"shift,omitempty" validate:"-"`

	OpeningBalance decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_balance"`
	// Set on close. Discrepancy = ClosingBalance - ExpectedBalance; a non-zero
	// value is recorded for reporting, never rejected.
	ClosingBalance  *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closing_balance,omitempty"`
	ExpectedBalance *decimal.Decimal `gorm:"type:decimal(12,2)" json:"expected_balance,omitempty"`
	Discrepancy     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"discrepancy,omitempty"`

	Status   SessionStatus `gorm:"type:varchar(10);not null;default:'OPEN';index" json:"status"`
	OpenedAt time.Time     `gorm:"not null" json:"opened_at"`
	ClosedAt *time.Time    `json:"closed_at,omitempty"`
	Notes    string        `gorm:"type:text" json:"notes"`
}

func (CashierSession) TableName() string {
	return "cashier_sessions"
}

// IsOpen reports whether the session can still accept sales.
func (s *CashierSession) IsOpen() bool {
	return s.Status == SessionOpen
}
