package service

import (
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

type MovementService interface {
	// ApplyStockIn receives goods: stock += quantity for every line, all in
	// one atomic movement.
	ApplyStockIn(req *MovementRequest, actor Actor) (*model.StockMovement, error)
	// ApplyStockOut is a non-POS adjustment: stock -= quantity, rejected as a
	// whole if any line would drive a product negative.
	ApplyStockOut(req *MovementRequest, actor Actor) (*model.StockMovement, error)
	// Update reverses the stored movement's stock delta and applies the new
	// one in a single transaction; if the net result would violate stock >= 0
	// the original movement stands unchanged.
	Update(id uuid.UUID, req *MovementRequest, actor Actor) (*model.StockMovement, error)
	// Delete reverses the movement's delta and soft-deletes the record.
	Delete(id uuid.UUID, actor Actor) error
	GetByID(id uuid.UUID) (*model.StockMovement, error)
	List(direction model.MovementDirection) ([]model.StockMovement, error)
}

type MovementLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

type MovementRequest struct {
	Date   string                `json:"date" validate:"required"` // YYYY-MM-DD
	Remark string                `json:"remark"`
	Lines  []MovementLineRequest `json:"items" validate:"required,min=1,dive"`
}

type movementService struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	sequenceRepo repository.SequenceRepository
	db           *gorm.DB
	wsHub        *ws.Hub
	log          *zap.Logger
}

func NewMovementService(movementRepo repository.MovementRepository, productRepo repository.ProductRepository,
	sequenceRepo repository.SequenceRepository, db *gorm.DB, hub *ws.Hub, log *zap.Logger) MovementService {
	return &movementService{
		movementRepo: movementRepo,
		productRepo:  productRepo,
		sequenceRepo: sequenceRepo,
		db:           db,
		wsHub:        hub,
		log:          log,
	}
}

// parsedLine is a movement line after input validation.
type parsedLine struct {
	productID uuid.UUID
	quantity  int
	unitPrice decimal.Decimal
	discount  decimal.Decimal
}

// parseMovementRequest validates every line before any stock is touched so a
// bad line rejects the whole movement up front.
func parseMovementRequest(req *MovementRequest) (time.Time, []parsedLine, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if len(req.Lines) == 0 {
		return time.Time{}, nil, fmt.Errorf("%w: movement has no lines", ErrInvalidInput)
	}

	lines := make([]parsedLine, 0, len(req.Lines))
	for i, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("%w: line %d product_id", ErrInvalidInput, i+1)
		}
		if line.Quantity <= 0 {
			return time.Time{}, nil, fmt.Errorf("%w: line %d", ErrInvalidQuantity, i+1)
		}
		if line.Discount.IsNegative() {
			return time.Time{}, nil, fmt.Errorf("%w: line %d", ErrNegativeDiscount, i+1)
		}
		lines = append(lines, parsedLine{
			productID: productID,
			quantity:  line.Quantity,
			unitPrice: line.UnitPrice,
			discount:  line.Discount,
		})
	}
	return date, lines, nil
}

func (s *movementService) ApplyStockIn(req *MovementRequest, actor Actor) (*model.StockMovement, error) {
	return s.apply(model.MovementIn, req, actor)
}

func (s *movementService) ApplyStockOut(req *MovementRequest, actor Actor) (*model.StockMovement, error) {
	return s.apply(model.MovementOut, req, actor)
}

func (s *movementService) apply(direction model.MovementDirection, req *MovementRequest, actor Actor) (*model.StockMovement, error) {
	date, lines, err := parseMovementRequest(req)
	if err != nil {
		return nil, err
	}

	sign := 1
	prefix := repository.SeqStockIn
	if direction == model.MovementOut {
		sign = -1
		prefix = repository.SeqStockOut
	}

	var movement *model.StockMovement

	err = s.db.Transaction(func(tx *gorm.DB) error {
		deltas := make([]stockDelta, len(lines))
		for i, line := range lines {
			deltas[i] = stockDelta{productID: line.productID, delta: sign * line.quantity}
		}

		locked, err := applyStockDeltas(tx, s.productRepo, deltas, actor.ID)
		if err != nil {
			return err
		}

		no, err := s.sequenceRepo.NextInTx(tx, repository.DailyKey(prefix, date))
		if err != nil {
			return err
		}

		movement = &model.StockMovement{
			TransactionNo: repository.FormatDocNo(prefix, date, no),
			Direction:     direction,
			Date:          date,
			Remark:        req.Remark,
			Casher:        actor.Name,
		}
		movement.CreatedBy = actor.ID
		movement.UpdatedBy = actor.ID
		movement.CreatedByUserID = &actor.ID
		movement.Lines = buildMovementLines(lines, locked)

		return s.movementRepo.CreateInTx(tx, movement)
	})
	if err != nil {
		if isStockError(err) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, err
	}

	metrics.StockMovements.WithLabelValues(string(direction)).Inc()
	s.log.Info("stock movement committed",
		zap.String("transaction_no", movement.TransactionNo),
		zap.String("direction", string(direction)),
		zap.Int("lines", len(movement.Lines)),
	)
	s.wsHub.PublishJSON(map[string]interface{}{
		"type":           "stock_update",
		"action":         "movement_created",
		"transaction_no": movement.TransactionNo,
		"direction":      direction,
		"user": map[string]interface{}{
			"id":   actor.ID,
			"name": actor.Name,
		},
	})

	return movement, nil
}

// buildMovementLines snapshots unit prices from the locked product rows when
// the request leaves them zero, and computes each line total.
func buildMovementLines(lines []parsedLine, locked map[uuid.UUID]lockedProduct) []model.MovementLine {
	out := make([]model.MovementLine, 0, len(lines))
	for _, line := range lines {
		unitPrice := line.unitPrice
		if unitPrice.IsZero() {
			if lp, ok := locked[line.productID]; ok {
				unitPrice = lp.product.Price
			}
		}
		total := unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))).Sub(line.discount)
		out = append(out, model.MovementLine{
			ProductID:  line.productID,
			Quantity:   line.quantity,
			UnitPrice:  unitPrice,
			Discount:   line.discount,
			TotalPrice: total,
		})
	}
	return out
}

func (s *movementService) Update(id uuid.UUID, req *MovementRequest, actor Actor) (*model.StockMovement, error) {
	date, lines, err := parseMovementRequest(req)
	if err != nil {
		return nil, err
	}

	var updated *model.StockMovement

	err = s.db.Transaction(func(tx *gorm.DB) error {
		movement, err := s.movementRepo.LockByID(tx, id)
		if err != nil {
			return ErrMovementNotFound
		}

		sign := 1
		if movement.Direction == model.MovementOut {
			sign = -1
		}

		// Net delta = inverse of the stored lines plus the new lines. Applied
		// as one batch so the stock >= 0 check is on the final state; on any
		// violation the transaction rolls back and the original movement
		// stands unchanged.
		var deltas []stockDelta
		for _, old := range movement.Lines {
			deltas = append(deltas, stockDelta{productID: old.ProductID, delta: -sign * old.Quantity})
		}
		for _, line := range lines {
			deltas = append(deltas, stockDelta{productID: line.productID, delta: sign * line.quantity})
		}

		locked, err := applyStockDeltas(tx, s.productRepo, deltas, actor.ID)
		if err != nil {
			return err
		}

		movement.Date = date
		movement.Remark = req.Remark
		movement.UpdatedBy = actor.ID

		return s.movementRepo.ReplaceLinesInTx(tx, movement, buildMovementLines(lines, locked))
	})
	if err != nil {
		return nil, err
	}

	updated, err = s.movementRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.log.Info("stock movement updated",
		zap.String("transaction_no", updated.TransactionNo),
		zap.String("updated_by", actor.ID),
	)
	s.wsHub.PublishJSON(map[string]interface{}{
		"type":           "stock_update",
		"action":         "movement_updated",
		"transaction_no": updated.TransactionNo,
	})

	return updated, nil
}

func (s *movementService) Delete(id uuid.UUID, actor Actor) error {
	var trxNo string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		movement, err := s.movementRepo.LockByID(tx, id)
		if err != nil {
			return ErrMovementNotFound
		}
		trxNo = movement.TransactionNo

		sign := 1
		if movement.Direction == model.MovementOut {
			sign = -1
		}

		var deltas []stockDelta
		for _, line := range movement.Lines {
			deltas = append(deltas, stockDelta{productID: line.ProductID, delta: -sign * line.Quantity})
		}

		if _, err := applyStockDeltas(tx, s.productRepo, deltas, actor.ID); err != nil {
			return err
		}

		return s.movementRepo.DeleteInTx(tx, id, actor.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info("stock movement deleted",
		zap.String("transaction_no", trxNo),
		zap.String("deleted_by", actor.ID),
	)
	s.wsHub.PublishJSON(map[string]interface{}{
		"type":           "stock_update",
		"action":         "movement_deleted",
		"transaction_no": trxNo,
	})

	return nil
}

func (s *movementService) GetByID(id uuid.UUID) (*model.StockMovement, error) {
	movement, err := s.movementRepo.FindByID(id)
	if err != nil {
		return nil, ErrMovementNotFound
	}
	return movement, nil
}

func (s *movementService) List(direction model.MovementDirection) ([]model.StockMovement, error) {
	return s.movementRepo.FindAll(direction)
}
