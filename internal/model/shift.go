package model

// Shift is master data describing a named work period (e.g. "Pagi" 07:00-15:00).
// Cashier sessions reference a shift when they are opened.
type Shift struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`

	// HH:MM, minute precision. An overnight shift has StartTime > EndTime.
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time" validate:"required"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time" validate:"required"`

	Note string `gorm:"type:text" json:"note,omitempty"`
}

func (Shift) TableName() string {
	return "shifts"
}
