package service

import (
	"fmt"

	"kasir-backend/internal/model"
	"kasir-backend/internal/repository"
	"kasir-backend/internal/ws"
	"kasir-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService interface {
	Create(req *ProductRequest, actor Actor) (*model.Product, error)
	// Update edits price, name, unit and description. Stock is deliberately
	// not editable here: it only moves through movement and sale commits.
	Update(id uuid.UUID, req *ProductRequest, actor Actor) (*model.Product, error)
	Delete(id uuid.UUID, actor Actor) error
	GetByID(id uuid.UUID) (*model.Product, error)
	GetByBarcode(barcode string) (*model.Product, error)
	List() ([]model.Product, error)
}

type ProductRequest struct {
	Barcode     string          `json:"barcode" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	// InitialStock is only honored on create.
	InitialStock int `json:"initial_stock"`
}

type productService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewProductService(productRepo repository.ProductRepository, hub *ws.Hub) ProductService {
	return &productService{productRepo: productRepo, wsHub: hub}
}

func (s *productService) validate(req *ProductRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidInput, first.FailedField, first.Tag)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if req.InitialStock < 0 {
		return fmt.Errorf("%w: initial stock cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (s *productService) Create(req *ProductRequest, actor Actor) (*model.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if existing, _ := s.productRepo.FindByBarcode(req.Barcode); existing != nil && existing.ID != uuid.Nil {
		return nil, ErrBarcodeExists
	}

	product := &model.Product{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.InitialStock,
		Unit:        req.Unit,
		Description: req.Description,
	}
	product.CreatedBy = actor.ID
	product.UpdatedBy = actor.ID
	product.CreatedByUserID = &actor.ID
	product.UpdatedByUserID = &actor.ID

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.wsHub.PublishJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":      product.ID,
			"barcode": product.Barcode,
			"name":    product.Name,
			"stock":   product.Stock,
			"price":   product.Price,
		},
		"message": fmt.Sprintf("%s created product '%s'", actor.Name, product.Name),
	})

	return product, nil
}

func (s *productService) Update(id uuid.UUID, req *ProductRequest, actor Actor) (*model.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Barcode != existing.Barcode {
		if dup, _ := s.productRepo.FindByBarcode(req.Barcode); dup != nil && dup.ID != uuid.Nil {
			return nil, ErrBarcodeExists
		}
	}

	existing.Barcode = req.Barcode
	existing.Name = req.Name
	existing.Price = req.Price
	existing.Unit = req.Unit
	existing.Description = req.Description
	existing.UpdatedBy = actor.ID
	existing.UpdatedByUserID = &actor.ID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.wsHub.PublishJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":      existing.ID,
			"barcode": existing.Barcode,
			"name":    existing.Name,
			"price":   existing.Price,
		},
		"message": fmt.Sprintf("%s updated product '%s'", actor.Name, existing.Name),
	})

	return existing, nil
}

func (s *productService) Delete(id uuid.UUID, actor Actor) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id, actor.ID)
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) GetByBarcode(barcode string) (*model.Product, error) {
	product, err := s.productRepo.FindByBarcode(barcode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBarcodeNotFound, barcode)
	}
	return product, nil
}

func (s *productService) List() ([]model.Product, error) {
	return s.productRepo.FindAll()
}
