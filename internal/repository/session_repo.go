package repository

import (
	"errors"

	"kasir-backend/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOpenSessionExists is returned when the partial unique index on
// (user_id) WHERE status='OPEN' rejects a second open session for the same
// user. The index, not the application-level read, is what makes the
// one-open-session invariant hold under concurrent opens.
var ErrOpenSessionExists = errors.New("an open session already exists for this user")

type SessionRepository interface {
	Create(session *model.CashierSession) error
	Update(session *model.CashierSession) error
	FindByID(id uuid.UUID) (*model.CashierSession, error)
	// FindOpenByUser returns gorm.ErrRecordNotFound when the user has no open
	// session; callers treat that as a signal, not a fault.
	FindOpenByUser(userID uuid.UUID) (*model.CashierSession, error)
	FindAll() ([]model.CashierSession, error)
	FindByUser(userID uuid.UUID) ([]model.CashierSession, error)

	// LockByID loads a session FOR UPDATE so close cannot race with itself.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.CashierSession, error)
	// SalesTotal sums the totals of all sales attributed to the session.
	SalesTotal(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db}
}

func (r *sessionRepo) Create(session *model.CashierSession) error {
	err := r.db.Create(session).Error
	if err != nil && isUniqueViolation(err) {
		return ErrOpenSessionExists
	}
	return err
}

// isUniqueViolation detects Postgres error 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *sessionRepo) Update(session *model.CashierSession) error {
	return r.db.Save(session).Error
}

func (r *sessionRepo) FindByID(id uuid.UUID) (*model.CashierSession, error) {
	var session model.CashierSession
	err := r.db.Preload("User").Preload("Shift").First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) FindOpenByUser(userID uuid.UUID) (*model.CashierSession, error) {
	var session model.CashierSession
	err := r.db.Preload("Shift").
		Where("user_id = ? AND status = ?", userID, model.SessionOpen).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) FindAll() ([]model.CashierSession, error) {
	var sessions []model.CashierSession
	err := r.db.Preload("User").Preload("Shift").
		Order("opened_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) FindByUser(userID uuid.UUID) ([]model.CashierSession, error) {
	var sessions []model.CashierSession
	err := r.db.Preload("Shift").
		Where("user_id = ?", userID).
		Order("opened_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.CashierSession, error) {
	var session model.CashierSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) SalesTotal(tx *gorm.DB, sessionID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := tx.Model(&model.Sale{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
