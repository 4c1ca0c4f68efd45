package service

import (
	"errors"
	"fmt"
	"time"

	"kasir-backend/internal/metrics"
	"kasir-backend/internal/model"
	"kasir-backend/internal/pos"
	"kasir-backend/internal/repository"
	"kasir-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SaleService interface {
	// PriceItem resolves a scanned barcode to a priced line candidate. An
	// unknown barcode is ErrBarcodeNotFound; the caller drops the scan
	// instead of aborting the cart.
	PriceItem(barcode string) (*PricedItem, error)
	// Quote computes totals for a cart without committing anything. Used by
	// the register screen while the cart is being built.
	Quote(req *CommitSaleRequest) (*pos.Totals, error)
	// Commit turns a cart into a persisted sale: binds the cashier's open
	// session, decrements stock atomically, draws an invoice number and
	// writes the transaction. A failed stock check aborts before any sale
	// row exists.
	Commit(req *CommitSaleRequest, actor Actor) (*model.Sale, error)
	GetByID(id uuid.UUID) (*model.Sale, error)
	List() ([]model.Sale, error)
	ListBySession(sessionID uuid.UUID) ([]model.Sale, error)
}

// PricedItem is the barcode-scan response for the register screen.
type PricedItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	Unit      string          `json:"unit"`
}

type SaleLineRequest struct {
	Barcode  string          `json:"barcode" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Discount decimal.Decimal `json:"discount"`
}

type CommitSaleRequest struct {
	Date          string            `json:"date"` // YYYY-MM-DD, defaults to today
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method"`
	Discount      decimal.Decimal   `json:"discount"`
	MoneyReceived decimal.Decimal   `json:"money_received"`
	Lines         []SaleLineRequest `json:"items" validate:"required,dive"`
}

type saleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	sessionRepo  repository.SessionRepository
	sequenceRepo repository.SequenceRepository
	db           *gorm.DB
	wsHub        *ws.Hub
	log          *zap.Logger
}

func NewSaleService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository,
	sessionRepo repository.SessionRepository, sequenceRepo repository.SequenceRepository,
	db *gorm.DB, hub *ws.Hub, log *zap.Logger) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		sessionRepo:  sessionRepo,
		sequenceRepo: sequenceRepo,
		db:           db,
		wsHub:        hub,
		log:          log,
	}
}

func (s *saleService) PriceItem(barcode string) (*PricedItem, error) {
	product, err := s.productRepo.FindByBarcode(barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBarcodeNotFound, barcode)
	}
	return &PricedItem{
		ProductID: product.ID,
		Barcode:   product.Barcode,
		Name:      product.Name,
		UnitPrice: product.Price,
		Stock:     product.Stock,
		Unit:      product.Unit,
	}, nil
}

// buildCart resolves every request line against the product store and merges
// them by barcode. Lines with empty barcodes are skipped (the register keeps
// a blank trailing row); an unresolvable non-empty barcode fails the build.
func (s *saleService) buildCart(req *CommitSaleRequest) (*pos.Cart, error) {
	cart := pos.NewCart()
	for i, line := range req.Lines {
		if line.Barcode == "" {
			continue
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidQuantity, i+1)
		}
		if line.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: line %d", ErrNegativeDiscount, i+1)
		}
		product, err := s.productRepo.FindByBarcode(line.Barcode)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBarcodeNotFound, line.Barcode)
		}
		cart.Upsert(product.ID, product.Barcode, product.Name, product.Price, line.Quantity, line.Discount)
	}
	if cart.Len() == 0 {
		return nil, ErrEmptyCart
	}
	return cart, nil
}

func validateSaleAmounts(req *CommitSaleRequest) error {
	if req.Discount.IsNegative() {
		return ErrNegativeDiscount
	}
	if req.MoneyReceived.IsNegative() {
		return fmt.Errorf("%w: money received", ErrInvalidInput)
	}
	return nil
}

func (s *saleService) Quote(req *CommitSaleRequest) (*pos.Totals, error) {
	if err := validateSaleAmounts(req); err != nil {
		return nil, err
	}
	cart, err := s.buildCart(req)
	if err != nil {
		return nil, err
	}
	totals := pos.ComputeTotals(cart.Lines(), req.Discount, req.MoneyReceived)
	return &totals, nil
}

// bindSession resolves the session a sale commits under. Cashier actors must
// have an open session; admin and manager actors commit unbound (nil session).
func (s *saleService) bindSession(actor Actor, actorID uuid.UUID) (*uuid.UUID, error) {
	if !model.RoleRequiresOpenSession(actor.RoleCode) {
		return nil, nil
	}
	session, err := s.sessionRepo.FindOpenByUser(actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionRequired
		}
		return nil, err
	}
	return &session.ID, nil
}

func (s *saleService) Commit(req *CommitSaleRequest, actor Actor) (*model.Sale, error) {
	if err := validateSaleAmounts(req); err != nil {
		return nil, err
	}

	cart, err := s.buildCart(req)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		date = parsed
	}

	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: acting user", ErrInvalidInput)
	}

	sessionID, err := s.bindSession(actor, actorID)
	if err != nil {
		return nil, err
	}

	lines := cart.Lines()
	totals := pos.ComputeTotals(lines, req.Discount, req.MoneyReceived)

	var sale *model.Sale

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-verify the bound session under lock; it may have been closed
		// between the gate check and the commit.
		if sessionID != nil {
			session, err := s.sessionRepo.LockByID(tx, *sessionID)
			if err != nil {
				return ErrSessionRequired
			}
			if !session.IsOpen() {
				return ErrSessionRequired
			}
		}

		// Stock check-and-decrement happens before the sale row is written,
		// so a failed check never leaves an orphan transaction.
		deltas := make([]stockDelta, len(lines))
		for i, line := range lines {
			deltas[i] = stockDelta{productID: line.ProductID, delta: -line.Quantity}
		}
		if _, err := applyStockDeltas(tx, s.productRepo, deltas, actor.ID); err != nil {
			return err
		}

		no, err := s.sequenceRepo.NextInTx(tx, repository.DailyKey(repository.SeqInvoice, date))
		if err != nil {
			return err
		}

		sale = &model.Sale{
			Invoice:       repository.FormatDocNo(repository.SeqInvoice, date, no),
			Date:          date,
			CustomerName:  req.CustomerName,
			Casher:        actor.Name,
			SessionID:     sessionID,
			Subtotal:      totals.Subtotal,
			Discount:      totals.Discount,
			Total:         totals.Total,
			MoneyReceived: req.MoneyReceived,
			ReturnAmount:  totals.ReturnAmount,
			PaymentMethod: req.PaymentMethod,
		}
		sale.CreatedBy = actor.ID
		sale.UpdatedBy = actor.ID
		sale.CreatedByUserID = &actor.ID

		saleLines := make([]model.SaleLine, len(lines))
		for i, line := range lines {
			saleLines[i] = model.SaleLine{
				ProductID:  line.ProductID,
				Barcode:    line.Barcode,
				Name:       line.Name,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Discount:   line.Discount,
				TotalPrice: line.Total(),
			}
		}
		sale.Lines = saleLines

		return s.saleRepo.CreateInTx(tx, sale)
	})
	if err != nil {
		if isStockError(err) {
			metrics.InsufficientStockRejections.Inc()
		}
		return nil, err
	}

	metrics.SalesCommitted.Inc()
	s.log.Info("sale committed",
		zap.String("invoice", sale.Invoice),
		zap.String("total", sale.Total.String()),
		zap.String("return_amount", sale.ReturnAmount.String()),
		zap.String("casher", actor.Name),
	)
	s.wsHub.PublishJSON(map[string]interface{}{
		"type":    "sale_update",
		"action":  "sale_committed",
		"invoice": sale.Invoice,
		"total":   sale.Total,
		"user": map[string]interface{}{
			"id":   actor.ID,
			"name": actor.Name,
		},
	})

	return sale, nil
}

func (s *saleService) GetByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}

func (s *saleService) List() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) ListBySession(sessionID uuid.UUID) ([]model.Sale, error) {
	return s.saleRepo.FindBySession(sessionID)
}
