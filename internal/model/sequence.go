package model

// NumberSequence backs generated document numbers (invoices, transaction
// numbers). Rows are locked FOR UPDATE while being bumped so two concurrent
// commits can never draw the same number.
type NumberSequence struct {
	Key    string `gorm:"type:varchar(50);primaryKey" json:"key"`
	LastNo int    `gorm:"not null;default:0" json:"last_no"`
}

func (NumberSequence) TableName() string {
	return "number_sequences"
}
