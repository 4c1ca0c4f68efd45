package repository

import (
	"fmt"
	"time"

	"kasir-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sequence keys. Document numbers restart daily, so the key embeds the date.
const (
	SeqInvoice  = "INV"
	SeqStockIn  = "TRXIN"
	SeqStockOut = "TRXOUT"
)

type SequenceRepository interface {
	// NextInTx draws the next number for key within tx. The sequence row is
	// locked FOR UPDATE so concurrent commits never draw the same number.
	NextInTx(tx *gorm.DB, key string) (int, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db}
}

func (r *sequenceRepo) NextInTx(tx *gorm.DB, key string) (int, error) {
	// Ensure the row exists before locking it. ON CONFLICT keeps two first
	// draws for a fresh key from racing.
	if err := tx.Exec(
		`INSERT INTO number_sequences ("key", last_no) VALUES (?, 0) ON CONFLICT ("key") DO NOTHING`,
		key,
	).Error; err != nil {
		return 0, fmt.Errorf("failed to ensure sequence %q: %w", key, err)
	}

	var seq model.NumberSequence
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seq, "key = ?", key).Error; err != nil {
		return 0, fmt.Errorf("failed to lock sequence %q: %w", key, err)
	}

	seq.LastNo++
	if err := tx.Model(&model.NumberSequence{}).
		Where(`"key" = ?`, key).
		Update("last_no", seq.LastNo).Error; err != nil {
		return 0, fmt.Errorf("failed to bump sequence %q: %w", key, err)
	}

	return seq.LastNo, nil
}

// DailyKey scopes a sequence to one business day, e.g. "INV-20250901".
func DailyKey(prefix string, date time.Time) string {
	return fmt.Sprintf("%s-%s", prefix, date.Format("20060102"))
}

// FormatDocNo renders a document number, e.g. "INV-20250901-0042".
func FormatDocNo(prefix string, date time.Time, no int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), no)
}
