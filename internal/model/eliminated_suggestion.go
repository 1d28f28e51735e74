package model

import "time"

// EliminatedSuggestion is a permanent operator decision that a specific
// supplier-product / catalog-product pairing must never be suggested again.
// There is no un-eliminate: operators who change their mind confirm the pair
// through the normal match flow, which is a separate auditable action.
type EliminatedSuggestion struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	SupplierProductID uint      `json:"supplier_product_id" gorm:"not null;uniqueIndex:idx_elimination_pair"`
	CatalogProductID  uint      `json:"catalog_product_id" gorm:"not null;uniqueIndex:idx_elimination_pair"`
	Actor             string    `json:"actor" gorm:"type:varchar(100);not null"`
	Reason            string    `json:"reason" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
}
