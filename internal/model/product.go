package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	StoreID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_products_store_sku,unique" json:"store_id" validate:"uuid_required"`
	Store      *Store     `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU           string `gorm:"type:varchar(50);not null;index:idx_products_store_sku,unique" json:"sku" validate:"required"`
	Barcode       string `gorm:"type:varchar(64);uniqueIndex;not null" json:"barcode" validate:"required"`
	IsImei        bool   `gorm:"default:false" json:"is_imei"`
	Quantity      int    `gorm:"default:0" json:"quantity"`
	PurchasePrice int64  `gorm:"default:0" json:"purchase_price"`
	SalePrice     *int64 `json:"sale_price,omitempty"`

	CreatedByID uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	Creator     *User     `gorm:"foreignKey:CreatedByID;references:ID" json:"creator,omitempty"`

	Imeis []ProductImei `json:"imeis,omitempty"`
}

// ProductImei tracks one physical unit of an IMEI product
type ProductImei struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Imei      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"imei"`
	IsSold    bool      `gorm:"default:false" json:"is_sold"`
}
