package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/internal/ws"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/validator"
)

type TransactionService interface {
	CreateTransaction(creator *model.User, req *CreateTransactionRequest) (*model.Transaction, error)
	ApproveTransaction(approver *model.User, transactionID uuid.UUID) (*model.Transaction, error)
	GetTransactions(requester *model.User) ([]model.Transaction, error)
	GetTransactionByID(id uuid.UUID) (*model.Transaction, error)
}

type TransactionItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateTransactionRequest struct {
	Type        model.TransactionType    `json:"type" validate:"required,oneof=SALE TRANSFER"`
	FromStoreID *uuid.UUID               `json:"from_store_id,omitempty"`
	ToStoreID   *uuid.UUID               `json:"to_store_id,omitempty"`
	Items       []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	storeRepo       repository.StoreRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		storeRepo:       storeRepo,
		db:              db,
		wsHub:           hub,
	}
}

func (s *transactionService) CreateTransaction(creator *model.User, req *CreateTransactionRequest) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	switch req.Type {
	case model.TxSale:
		if req.FromStoreID == nil && req.ToStoreID == nil {
			return nil, apperr.Validation("SALE requires a store")
		}
	case model.TxTransfer:
		if req.FromStoreID == nil || req.ToStoreID == nil {
			return nil, apperr.Validation("TRANSFER requires both a source and a destination store")
		}
		if *req.FromStoreID == *req.ToStoreID {
			return nil, apperr.Validation("TRANSFER source and destination must differ")
		}
	}

	// The route guard already applies this; re-checked for non-HTTP callers
	if err := authz.EnforceTransactionType(creator, req.Type); err != nil {
		return nil, err
	}

	// Every store named by the transaction must belong to the creator's
	// tenant; otherwise a request could move another tenant's stock.
	for _, storeID := range []*uuid.UUID{req.FromStoreID, req.ToStoreID} {
		if storeID == nil {
			continue
		}
		store, err := s.storeRepo.FindByID(*storeID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, apperr.NotFound("Store")
		}
		if !authz.CheckOwnerScope(creator, store.OwnerID) {
			return nil, apperr.Forbidden("Access denied to store")
		}
	}

	// The source store is where stock leaves. A SALE may name either
	// end; a TRANSFER always moves FromStore → ToStore.
	sourceID := req.FromStoreID
	if sourceID == nil {
		sourceID = req.ToStoreID
	}

	transaction := &model.Transaction{
		Type:        req.Type,
		FromStoreID: req.FromStoreID,
		ToStoreID:   req.ToStoreID,
		CreatedByID: creator.ID,
		IsFinished:  req.Type == model.TxSale,
	}
	transaction.CreatedBy = creator.ID.String()
	transaction.UpdatedBy = creator.ID.String()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total int64

		for _, item := range req.Items {
			var product model.Product
			if err := tx.Set("gorm:query_option", "FOR UPDATE").
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				return apperr.NotFound("Product")
			}
			if product.StoreID != *sourceID {
				return apperr.Validation("Product does not belong to the source store")
			}
			if product.Quantity < item.Quantity {
				return apperr.Validation(fmt.Sprintf("Insufficient stock for '%s'", product.Name))
			}

			price := product.PurchasePrice
			if product.SalePrice != nil {
				price = *product.SalePrice
			}
			amount := price * int64(item.Quantity)
			total += amount

			transaction.Items = append(transaction.Items, model.TransactionItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     price,
				Quantity:  item.Quantity,
				Amount:    amount,
			})

			switch req.Type {
			case model.TxSale:
				if err := s.sellStock(tx, &product, item.Quantity, creator.ID.String()); err != nil {
					return err
				}
			case model.TxTransfer:
				if err := s.transferStock(tx, &product, item.Quantity, *req.ToStoreID, creator.ID.String()); err != nil {
					return err
				}
			}
		}

		transaction.Amount = total
		return tx.Create(transaction).Error
	})

	if err != nil {
		return nil, err
	}

	s.wsHub.Emit("transaction_created", map[string]interface{}{
		"transaction": map[string]interface{}{
			"id":     transaction.ID,
			"type":   transaction.Type,
			"amount": transaction.Amount,
		},
		"message": fmt.Sprintf("%s recorded a %s of %d", creator.Name, transaction.Type, transaction.Amount),
	})

	return transaction, nil
}

func (s *transactionService) sellStock(tx *gorm.DB, product *model.Product, quantity int, updatedBy string) error {
	if product.IsImei {
		// Quantity is pinned to 1 for IMEI products; the unit's IMEI
		// rows are marked sold rather than deleted.
		if err := tx.Model(&model.ProductImei{}).
			Where("product_id = ?", product.ID).
			Update("is_sold", true).Error; err != nil {
			return err
		}
	}
	return s.productRepo.UpdateQuantity(tx, product.ID, product.Quantity-quantity, updatedBy)
}

// transferStock moves quantity into the destination store. IMEI
// products move as a whole row; bulk products decrement the source and
// upsert a matching SKU in the destination.
func (s *transactionService) transferStock(tx *gorm.DB, product *model.Product, quantity int, toStoreID uuid.UUID, updatedBy string) error {
	if product.IsImei {
		return tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"store_id":   toStoreID,
				"updated_by": updatedBy,
			}).Error
	}

	if err := s.productRepo.UpdateQuantity(tx, product.ID, product.Quantity-quantity, updatedBy); err != nil {
		return err
	}

	var dest model.Product
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&dest, "store_id = ? AND sku = ?", toStoreID, product.SKU).Error
	if err == nil {
		return s.productRepo.UpdateQuantity(tx, dest.ID, dest.Quantity+quantity, updatedBy)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	clone := model.Product{
		StoreID:       toStoreID,
		CategoryID:    nil,
		Name:          product.Name,
		SKU:           product.SKU,
		Barcode:       product.Barcode + "-" + toStoreID.String()[:8],
		Quantity:      quantity,
		PurchasePrice: product.PurchasePrice,
		SalePrice:     product.SalePrice,
		CreatedByID:   product.CreatedByID,
	}
	clone.CreatedBy = updatedBy
	clone.UpdatedBy = updatedBy
	return tx.Create(&clone).Error
}

func (s *transactionService) ApproveTransaction(approver *model.User, transactionID uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperr.NotFound("Transaction")
	}
	// A CASHIER holds UPDATE_TRANSACTION for sales but must not finish
	// a TRANSFER.
	if err := authz.EnforceTransactionType(approver, transaction.Type); err != nil {
		return nil, err
	}
	if transaction.IsFinished {
		return nil, apperr.Validation("Transaction is already finished")
	}

	approverID := approver.ID
	transaction.ApprovedByID = &approverID
	transaction.IsFinished = true
	transaction.UpdatedBy = approver.ID.String()

	if err := s.transactionRepo.Update(transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *transactionService) GetTransactions(requester *model.User) ([]model.Transaction, error) {
	scope, ok := authz.ScopeID(requester)
	if !ok {
		return []model.Transaction{}, nil
	}
	stores, err := s.storeRepo.FindAllOwnedBy(scope)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(stores))
	for i, store := range stores {
		ids[i] = store.ID
	}
	return s.transactionRepo.FindAllInvolvingStores(ids)
}

func (s *transactionService) GetTransactionByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperr.NotFound("Transaction")
	}
	return transaction, nil
}
