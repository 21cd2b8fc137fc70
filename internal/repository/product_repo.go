package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/model"
)

type ProductRepository interface {
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByBarcode(barcode string) (*model.Product, error)
	FindBySKUInStore(tx *gorm.DB, storeID uuid.UUID, sku string) (*model.Product, error)
	FindAllByStore(storeID uuid.UUID) ([]model.Product, error)
	FindImeiByCode(imei string) (*model.ProductImei, error)
	Create(product *model.Product) error
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error
	ReplaceImeis(tx *gorm.DB, productID uuid.UUID, imeis []string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Imeis").Preload("Store").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByBarcode(barcode string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKUInStore takes the caller's *gorm.DB so the uniqueness
// re-check during an update runs under the same row lock
func (r *productRepo) FindBySKUInStore(tx *gorm.DB, storeID uuid.UUID, sku string) (*model.Product, error) {
	var product model.Product
	if err := tx.First(&product, "store_id = ? AND sku = ?", storeID, sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindAllByStore(storeID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Imeis").Where("store_id = ?", storeID).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindImeiByCode(imei string) (*model.ProductImei, error) {
	var row model.ProductImei
	if err := r.db.First(&row, "imei = ?", imei).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// UpdateQuantity takes the caller's *gorm.DB so it can run inside a
// transaction holding a row lock
func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, newQuantity int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		}).Error
}

// ReplaceImeis deletes all of a product's IMEI rows and inserts the new
// set. It must run inside the caller's transaction so a mid-failure
// cannot leave a partial IMEI set.
func (r *productRepo) ReplaceImeis(tx *gorm.DB, productID uuid.UUID, imeis []string) error {
	if err := tx.Where("product_id = ?", productID).Delete(&model.ProductImei{}).Error; err != nil {
		return err
	}
	if len(imeis) == 0 {
		return nil
	}
	rows := make([]model.ProductImei, len(imeis))
	for i, imei := range imeis {
		rows[i] = model.ProductImei{ProductID: productID, Imei: imei}
	}
	return tx.Create(&rows).Error
}
