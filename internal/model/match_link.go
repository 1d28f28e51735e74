package model

import "time"

// Confirmation methods for a match link
const (
	MethodManual = "manual"
	MethodAuto   = "auto-high-confidence"
)

// MatchLink is the confirmed association between a supplier product and a
// catalog product. Re-matching supersedes the old link instead of deleting it,
// so the audit trail survives. The partial unique index keeps at most one
// active link per supplier product; a concurrent duplicate confirm trips the
// constraint and is treated as idempotent success by the write path.
type MatchLink struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	SupplierProductID uint       `json:"supplier_product_id" gorm:"not null;index;uniqueIndex:uniq_active_match_link,where:active"`
	CatalogProductID  uint       `json:"catalog_product_id" gorm:"not null;index"`
	Method            string     `json:"method" gorm:"type:varchar(30);not null"`
	Actor             string     `json:"actor" gorm:"type:varchar(100)"`
	Score             *float64   `json:"score,omitempty" gorm:"comment:'Similarity score at confirmation time, set for auto-confirmed links'"`
	PriceOverride     *float64   `json:"price_override,omitempty"`
	Active            bool       `json:"active" gorm:"not null;default:true"`
	ConfirmedAt       time.Time  `json:"confirmed_at"`
	SupersededAt      *time.Time `json:"superseded_at,omitempty"`
}
