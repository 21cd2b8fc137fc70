package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/internal/ws"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/validator"
)

type ProductService interface {
	CreateProduct(creator *model.User, req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(updater *model.User, productID uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(deleter *model.User, productID uuid.UUID) error
	GetProductsByStore(storeID uuid.UUID) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type CreateProductRequest struct {
	StoreID       uuid.UUID  `json:"store_id" validate:"uuid_required"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name" validate:"required"`
	SKU           string     `json:"sku" validate:"required"`
	Barcode       string     `json:"barcode" validate:"required"`
	IsImei        bool       `json:"is_imei"`
	Quantity      int        `json:"quantity" validate:"gte=0"`
	PurchasePrice int64      `json:"purchase_price" validate:"gte=0"`
	SalePrice     *int64     `json:"sale_price,omitempty"`
	Imeis         []string   `json:"imeis,omitempty"`
}

type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name" validate:"required"`
	SKU           string     `json:"sku" validate:"required"`
	Quantity      int        `json:"quantity" validate:"gte=0"`
	PurchasePrice int64      `json:"purchase_price" validate:"gte=0"`
	SalePrice     *int64     `json:"sale_price,omitempty"`
	// When present, replaces the product's IMEI set atomically with
	// the product row update
	Imeis []string `json:"imeis,omitempty"`
}

type productService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewProductService(productRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{productRepo: productRepo, db: db, wsHub: hub}
}

func (s *productService) CreateProduct(creator *model.User, req *CreateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}
	if err := validateImeiInvariant(req.IsImei, req.Quantity, req.Imeis, true); err != nil {
		return nil, err
	}

	// Uniqueness: barcode globally, SKU per store, IMEI globally.
	// Check-then-insert; the unique indexes are the backstop under
	// concurrent writes.
	existing, err := s.productRepo.FindByBarcode(req.Barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Barcode already exists")
	}

	existing, err = s.productRepo.FindBySKUInStore(s.db, req.StoreID, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("SKU already exists in this store")
	}

	for _, imei := range req.Imeis {
		row, err := s.productRepo.FindImeiByCode(imei)
		if err != nil {
			return nil, err
		}
		if row != nil {
			return nil, apperr.Conflict("IMEI already registered: " + imei)
		}
	}

	product := &model.Product{
		StoreID:       req.StoreID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		IsImei:        req.IsImei,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		CreatedByID:   creator.ID,
	}
	product.CreatedBy = creator.ID.String()
	product.UpdatedBy = creator.ID.String()
	for _, imei := range req.Imeis {
		product.Imeis = append(product.Imeis, model.ProductImei{Imei: imei})
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.wsHub.Emit("product_created", map[string]interface{}{
		"product": map[string]interface{}{
			"id":       product.ID,
			"store_id": product.StoreID,
			"sku":      product.SKU,
			"name":     product.Name,
			"quantity": product.Quantity,
		},
		"message": fmt.Sprintf("%s created product '%s'", creator.Name, product.Name),
	})

	return product, nil
}

func (s *productService) UpdateProduct(updater *model.User, productID uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	var updated *model.Product
	var oldQuantity int

	// The product row update and the IMEI delete-all-then-insert-all
	// run as one unit; a mid-failure rolls back both.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&existing, "id = ?", productID).Error; err != nil {
			return apperr.NotFound("Product")
		}

		if err := validateImeiInvariant(existing.IsImei, req.Quantity, req.Imeis, false); err != nil {
			return err
		}

		if req.SKU != existing.SKU {
			other, err := s.productRepo.FindBySKUInStore(tx, existing.StoreID, req.SKU)
			if err != nil {
				return err
			}
			if other != nil && other.ID != existing.ID {
				return apperr.Conflict("SKU already exists in this store")
			}
		}

		oldQuantity = existing.Quantity
		existing.CategoryID = req.CategoryID
		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Quantity = req.Quantity
		existing.PurchasePrice = req.PurchasePrice
		existing.SalePrice = req.SalePrice
		existing.UpdatedBy = updater.ID.String()

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		if existing.IsImei && req.Imeis != nil {
			if err := s.productRepo.ReplaceImeis(tx, existing.ID, req.Imeis); err != nil {
				return err
			}
		}

		updated = &existing
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Broadcast only once the transaction has committed
	s.wsHub.Emit("product_updated", map[string]interface{}{
		"product": map[string]interface{}{
			"id":           updated.ID,
			"store_id":     updated.StoreID,
			"sku":          updated.SKU,
			"name":         updated.Name,
			"old_quantity": oldQuantity,
			"new_quantity": updated.Quantity,
		},
		"message": fmt.Sprintf("%s updated product '%s'", updater.Name, updated.Name),
	})

	return updated, nil
}

func (s *productService) DeleteProduct(deleter *model.User, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperr.NotFound("Product")
	}
	return s.productRepo.Delete(productID, deleter.ID.String())
}

func (s *productService) GetProductsByStore(storeID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAllByStore(storeID)
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("Product")
	}
	return product, nil
}

// An IMEI-tracked product is a single physical unit: quantity locked
// to 1, exactly one IMEI per row. On create the IMEI is mandatory; on
// update a nil list means "keep the stored set".
func validateImeiInvariant(isImei bool, quantity int, imeis []string, imeiRequired bool) error {
	if !isImei {
		if len(imeis) > 0 {
			return apperr.Validation("IMEI list is only allowed for IMEI-tracked products")
		}
		return nil
	}
	if quantity != 1 {
		return apperr.Validation("IMEI-tracked products must have quantity 1")
	}
	if imeis == nil && !imeiRequired {
		return nil
	}
	if len(imeis) != 1 {
		return apperr.Validation("IMEI-tracked products must carry exactly one IMEI")
	}
	return nil
}
