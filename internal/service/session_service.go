package service

import (
	"errors"
	"fmt"
	"time"

	"kasir-backend/internal/metrics"
	"kasir-backend/internal/model"
	"kasir-backend/internal/repository"
	"kasir-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SessionService interface {
	Open(req *OpenSessionRequest, actor Actor) (*model.CashierSession, error)
	// Current returns the user's open session, or ErrNoOpenSession. The
	// front end gates the POS screen on this lookup.
	Current(userID uuid.UUID) (*model.CashierSession, error)
	Close(sessionID uuid.UUID, req *CloseSessionRequest, actor Actor) (*model.CashierSession, error)
	GetByID(id uuid.UUID) (*model.CashierSession, error)
	List() ([]model.CashierSession, error)
	ListByUser(userID uuid.UUID) ([]model.CashierSession, error)
	// SalesTotal sums the sale totals attributed to a session so far.
	SalesTotal(sessionID uuid.UUID) (decimal.Decimal, error)
}

type OpenSessionRequest struct {
	UserID         string          `json:"user_id" validate:"required"`
	ShiftID        string          `json:"shift_id" validate:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type CloseSessionRequest struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Notes          string          `json:"notes"`
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	shiftRepo   repository.ShiftRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	log         *zap.Logger
}

func NewSessionService(sessionRepo repository.SessionRepository, shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository, db *gorm.DB, hub *ws.Hub, log *zap.Logger) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		shiftRepo:   shiftRepo,
		userRepo:    userRepo,
		db:          db,
		wsHub:       hub,
		log:         log,
	}
}

func (s *sessionService) Open(req *OpenSessionRequest, actor Actor) (*model.CashierSession, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance", ErrNegativeBalance)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id", ErrInvalidInput)
	}
	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		return nil, fmt.Errorf("%w: shift_id", ErrInvalidInput)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, "user not found")
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", ErrInvalidInput)
	}
	if _, err := s.shiftRepo.FindByID(shiftID); err != nil {
		return nil, ErrShiftNotFound
	}

	// Friendly pre-check; the partial unique index is what actually closes
	// the race between two concurrent opens for the same user.
	if _, err := s.sessionRepo.FindOpenByUser(userID); err == nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := &model.CashierSession{
		UserID:         userID,
		ShiftID:        shiftID,
		OpeningBalance: req.OpeningBalance,
		Status:         model.SessionOpen,
		OpenedAt:       time.Now(),
	}
	session.CreatedBy = actor.ID
	session.UpdatedBy = actor.ID

	if err := s.sessionRepo.Create(session); err != nil {
		if errors.Is(err, repository.ErrOpenSessionExists) {
			return nil, ErrSessionAlreadyOpen
		}
		return nil, err
	}

	metrics.SessionsOpened.Inc()
	s.log.Info("cashier session opened",
		zap.String("session_id", session.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("opening_balance", req.OpeningBalance.String()),
	)
	s.wsHub.PublishJSON(map[string]interface{}{
		"type":       "session_update",
		"action":     "session_opened",
		"session_id": session.ID,
		"user_id":    userID,
	})

	return session, nil
}

func (s *sessionService) Current(userID uuid.UUID) (*model.CashierSession, error) {
	session, err := s.sessionRepo.FindOpenByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenSession
		}
		return nil, err
	}
	return session, nil
}

// reconcile computes the close arithmetic: expected drawer = opening balance
// plus all sales attributed to the session, discrepancy = counted closing
// balance minus expected. A non-zero discrepancy is recorded, never rejected.
func reconcile(opening, salesTotal, closing decimal.Decimal) (expected, discrepancy decimal.Decimal) {
	expected = opening.Add(salesTotal)
	discrepancy = closing.Sub(expected)
	return expected, discrepancy
}

func (s *sessionService) Close(sessionID uuid.UUID, req *CloseSessionRequest, actor Actor) (*model.CashierSession, error) {
	if req.ClosingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: closing balance", ErrNegativeBalance)
	}

	var closed *model.CashierSession

	err := s.db.Transaction(func(tx *gorm.DB) error {
		session, err := s.sessionRepo.LockByID(tx, sessionID)
		if err != nil {
			return ErrSessionNotFound
		}
		if !session.IsOpen() {
			return ErrSessionAlreadyClosed
		}

		salesTotal, err := s.sessionRepo.SalesTotal(tx, session.ID)
		if err != nil {
			return err
		}

		expected, discrepancy := reconcile(session.OpeningBalance, salesTotal, req.ClosingBalance)
		now := time.Now()

		session.ClosingBalance = &req.ClosingBalance
		session.ExpectedBalance = &expected
		session.Discrepancy = &discrepancy
		session.Status = model.SessionClosed
		session.ClosedAt = &now
		session.Notes = req.Notes
		session.UpdatedBy = actor.ID

		if err := tx.Save(session).Error; err != nil {
			return err
		}

		closed = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsClosed.Inc()
	s.log.Info("cashier session closed",
		zap.String("session_id", closed.ID.String()),
		zap.String("expected_balance", closed.ExpectedBalance.String()),
		zap.String("closing_balance", closed.ClosingBalance.String()),
		zap.String("discrepancy", closed.Discrepancy.String()),
	)
	s.wsHub.PublishJSON(map[string]interface{}{
		"type":       "session_update",
		"action":     "session_closed",
		"session_id": closed.ID,
		"user_id":    closed.UserID,
	})

	return closed, nil
}

func (s *sessionService) GetByID(id uuid.UUID) (*model.CashierSession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) List() ([]model.CashierSession, error) {
	return s.sessionRepo.FindAll()
}

func (s *sessionService) ListByUser(userID uuid.UUID) ([]model.CashierSession, error) {
	return s.sessionRepo.FindByUser(userID)
}

func (s *sessionService) SalesTotal(sessionID uuid.UUID) (decimal.Decimal, error) {
	if _, err := s.sessionRepo.FindByID(sessionID); err != nil {
		return decimal.Zero, ErrSessionNotFound
	}
	return s.sessionRepo.SalesTotal(s.db, sessionID)
}
