package model

import (
	"time"

	"gorm.io/gorm"
)

// CatalogProduct is a canonical product in the owning business's catalog.
// Zero or more supplier products may be linked to one catalog product.
type CatalogProduct struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(512);not null"`
	AliasName string         `json:"alias_name" gorm:"type:varchar(512);comment:'Foreign-language alias used alongside the canonical name when matching'"`
	SKU       string         `json:"sku" gorm:"type:varchar(100);unique;not null"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
