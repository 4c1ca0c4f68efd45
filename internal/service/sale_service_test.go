package service

import (
	"testing"

	"kasir-backend/internal/model"
	"kasir-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeProductRepo serves FindByBarcode from a fixed map; the write paths are
// not exercised by the cart-building tests.
type fakeProductRepo struct {
	byBarcode map[string]*model.Product
	lockErr   error
}

func (f *fakeProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	if p, ok := f.byBarcode[barcode]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) Create(*model.Product) error                   { return nil }
func (f *fakeProductRepo) FindAll() ([]model.Product, error)             { return nil, nil }
func (f *fakeProductRepo) FindByID(uuid.UUID) (*model.Product, error)    { return nil, gorm.ErrRecordNotFound }
func (f *fakeProductRepo) Update(*model.Product) error                   { return nil }
func (f *fakeProductRepo) Delete(uuid.UUID, string) error                { return nil }
func (f *fakeProductRepo) LockByID(*gorm.DB, uuid.UUID) (*model.Product, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) UpdateStock(*gorm.DB, uuid.UUID, int, string) error { return nil }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// fakeSessionRepo serves FindOpenByUser from a single stored session and
// counts the lookups; everything else is untouched by the gate tests.
type fakeSessionRepo struct {
	open    *model.CashierSession
	lookups int
}

func (f *fakeSessionRepo) FindOpenByUser(uuid.UUID) (*model.CashierSession, error) {
	f.lookups++
	if f.open != nil {
		return f.open, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionRepo) Create(*model.CashierSession) error { return nil }
func (f *fakeSessionRepo) Update(*model.CashierSession) error { return nil }
func (f *fakeSessionRepo) FindByID(uuid.UUID) (*model.CashierSession, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSessionRepo) FindAll() ([]model.CashierSession, error)           { return nil, nil }
func (f *fakeSessionRepo) FindByUser(uuid.UUID) ([]model.CashierSession, error) { return nil, nil }
func (f *fakeSessionRepo) LockByID(*gorm.DB, uuid.UUID) (*model.CashierSession, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSessionRepo) SalesTotal(*gorm.DB, uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

func testSaleService(products map[string]*model.Product) *saleService {
	return &saleService{productRepo: &fakeProductRepo{byBarcode: products}}
}

func testProduct(barcode, name, price string) *model.Product {
	p := &model.Product{
		Barcode: barcode,
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Stock:   100,
	}
	p.ID = uuid.New()
	return p
}

func TestBuildCartMergesDuplicateBarcodes(t *testing.T) {
	s := testSaleService(map[string]*model.Product{
		"111": testProduct("111", "Teh Botol", "4000"),
	})

	cart, err := s.buildCart(&CommitSaleRequest{
		Lines: []SaleLineRequest{
			{Barcode: "111", Quantity: 1},
			{Barcode: "111", Quantity: 2},
		},
	})
	require.NoError(t, err)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Teh Botol", lines[0].Name)
}

func TestBuildCartSkipsEmptyBarcodes(t *testing.T) {
	s := testSaleService(map[string]*model.Product{
		"111": testProduct("111", "Teh Botol", "4000"),
	})

	cart, err := s.buildCart(&CommitSaleRequest{
		Lines: []SaleLineRequest{
			{Barcode: "", Quantity: 1},
			{Barcode: "111", Quantity: 1},
			{Barcode: "", Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())
}

func TestBuildCartUnknownBarcode(t *testing.T) {
	s := testSaleService(map[string]*model.Product{})

	_, err := s.buildCart(&CommitSaleRequest{
		Lines: []SaleLineRequest{{Barcode: "999", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrBarcodeNotFound)
}

func TestBuildCartEmptyCart(t *testing.T) {
	s := testSaleService(map[string]*model.Product{})

	_, err := s.buildCart(&CommitSaleRequest{
		Lines: []SaleLineRequest{{Barcode: "", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildCartRejectsBadLines(t *testing.T) {
	s := testSaleService(map[string]*model.Product{
		"111": testProduct("111", "Teh Botol", "4000"),
	})

	_, err := s.buildCart(&CommitSaleRequest{
		Lines: []SaleLineRequest{{Barcode: "111", Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.buildCart(&CommitSaleRequest{
		Lines: []SaleLineRequest{{Barcode: "111", Quantity: 1, Discount: decimal.NewFromInt(-10)}},
	})
	assert.ErrorIs(t, err, ErrNegativeDiscount)
}

func TestValidateSaleAmounts(t *testing.T) {
	assert.NoError(t, validateSaleAmounts(&CommitSaleRequest{
		Discount:      decimal.Zero,
		MoneyReceived: decimal.NewFromInt(50000),
	}))

	assert.ErrorIs(t, validateSaleAmounts(&CommitSaleRequest{
		Discount: decimal.NewFromInt(-1),
	}), ErrNegativeDiscount)

	assert.ErrorIs(t, validateSaleAmounts(&CommitSaleRequest{
		MoneyReceived: decimal.NewFromInt(-1),
	}), ErrInvalidInput)
}

func TestBindSessionCashierRequiresOpenSession(t *testing.T) {
	s := &saleService{sessionRepo: &fakeSessionRepo{}}

	_, err := s.bindSession(Actor{RoleCode: model.RoleCashier}, uuid.New())
	assert.ErrorIs(t, err, ErrSessionRequired)
}

func TestBindSessionCashierBindsOpenSession(t *testing.T) {
	open := &model.CashierSession{Status: model.SessionOpen}
	open.ID = uuid.New()
	s := &saleService{sessionRepo: &fakeSessionRepo{open: open}}

	id, err := s.bindSession(Actor{RoleCode: model.RoleCashier}, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, open.ID, *id)
}

func TestBindSessionAdminAndManagerBypass(t *testing.T) {
	for _, role := range []string{model.RoleAdmin, model.RoleManager} {
		repo := &fakeSessionRepo{}
		s := &saleService{sessionRepo: repo}

		id, err := s.bindSession(Actor{RoleCode: role}, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, id, "role %s must commit unbound", role)
		assert.Equal(t, 0, repo.lookups, "role %s must not look up a session", role)
	}
}

func TestCommitCashierWithoutSessionRejected(t *testing.T) {
	s := &saleService{
		productRepo: &fakeProductRepo{byBarcode: map[string]*model.Product{
			"111": testProduct("111", "Teh Botol", "4000"),
		}},
		sessionRepo: &fakeSessionRepo{},
	}

	_, err := s.Commit(&CommitSaleRequest{
		MoneyReceived: decimal.NewFromInt(10000),
		Lines:         []SaleLineRequest{{Barcode: "111", Quantity: 1}},
	}, Actor{ID: uuid.New().String(), Name: "Siti", RoleCode: model.RoleCashier})

	assert.ErrorIs(t, err, ErrSessionRequired)
}

func TestQuoteComputesTotals(t *testing.T) {
	s := testSaleService(map[string]*model.Product{
		"111": testProduct("111", "Teh Botol", "4000"),
		"222": testProduct("222", "Roti Tawar", "12000"),
	})

	totals, err := s.Quote(&CommitSaleRequest{
		Discount:      decimal.NewFromInt(1000),
		MoneyReceived: decimal.NewFromInt(20000),
		Lines: []SaleLineRequest{
			{Barcode: "111", Quantity: 2}, // 8000
			{Barcode: "222", Quantity: 1}, // 12000
		},
	})
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(20000)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(19000)))
	assert.True(t, totals.ReturnAmount.Equal(decimal.NewFromInt(1000)))
}
