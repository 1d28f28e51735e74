package model

import (
	"strings"
	"time"

	"matching-service/internal/matching"

	"gorm.io/gorm"
)

// Match status values for a supplier product. The "suggested" state from the
// operator UI is derived per request and never persisted.
const (
	StatusUnmatched = "unmatched"
	StatusConfirmed = "confirmed"
)

// SupplierProduct represents one listing from an external supplier's catalog.
// Rows are created at import time and only ever change match status; they are
// soft-deleted, never removed.
type SupplierProduct struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	SupplierID       uint           `json:"supplier_id" gorm:"index;not null"`
	Name             string         `json:"name" gorm:"type:varchar(512);not null"`
	NormalizedTokens string         `json:"normalized_tokens" gorm:"type:text"`
	Price            float64        `json:"price"`
	Currency         string         `json:"currency" gorm:"type:varchar(8)"`
	SourceURL        string         `json:"source_url" gorm:"type:varchar(1024);index"`
	Source           string         `json:"source" gorm:"type:varchar(100)"`
	MatchStatus      string         `json:"match_status" gorm:"type:varchar(20);index;default:'unmatched'"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeSave keeps the cached token set in step with the raw name
func (p *SupplierProduct) BeforeSave(tx *gorm.DB) error {
	p.NormalizedTokens = strings.Join(matching.Tokenize(p.Name), " ")
	return nil
}

// Tokens returns the cached normalized token set
func (p *SupplierProduct) Tokens() []string {
	if p.NormalizedTokens == "" {
		return matching.Tokenize(p.Name)
	}
	return strings.Fields(p.NormalizedTokens)
}
