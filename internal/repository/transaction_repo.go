package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/model"
)

type TransactionRepository interface {
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindAllInvolvingStores(storeIDs []uuid.UUID) ([]model.Transaction, error)
	Update(transaction *model.Transaction) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Items").Preload("FromStore").Preload("ToStore").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

// FindAllInvolvingStores lists transactions where either end touches
// one of the given stores
func (r *transactionRepo) FindAllInvolvingStores(storeIDs []uuid.UUID) ([]model.Transaction, error) {
	if len(storeIDs) == 0 {
		return []model.Transaction{}, nil
	}
	var transactions []model.Transaction
	err := r.db.Preload("Items").
		Where("from_store_id IN ? OR to_store_id IN ?", storeIDs, storeIDs).
		Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) Update(transaction *model.Transaction) error {
	return r.db.Save(transaction).Error
}
