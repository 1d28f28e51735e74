package workflow

import (
	"context"

	"matching-service/internal/model"
)

// Store is the persistence surface the matching workflow runs against.
// Implementations must wrap each write in its own transaction and translate
// missing records into matching.ErrNotFound. The gorm implementation lives in
// gorm_store.go; tests use an in-memory fake.
type Store interface {
	SupplierProduct(ctx context.Context, id uint) (*model.SupplierProduct, error)
	CatalogProduct(ctx context.Context, id uint) (*model.CatalogProduct, error)

	// ActiveCatalog returns every active catalog product, the snapshot the
	// suggestion index is built over.
	ActiveCatalog(ctx context.Context) ([]model.CatalogProduct, error)

	// UnmatchedSupplierProducts pages through the unmatched pool. supplierID 0
	// means all suppliers; limit <= 0 means no limit. Returns the page and the
	// total pool size.
	UnmatchedSupplierProducts(ctx context.Context, supplierID uint, offset, limit int) ([]model.SupplierProduct, int64, error)

	// EliminatedFor returns the catalog product ids permanently rejected for
	// one supplier product, used as the suggestion exclusion set.
	EliminatedFor(ctx context.Context, supplierProductID uint) (map[uint]struct{}, error)
	IsEliminated(ctx context.Context, supplierProductID, catalogProductID uint) (bool, error)

	// CreateElimination records a rejected pairing. Re-eliminating an existing
	// pair succeeds without a duplicate row. Fails with matching.ErrNotFound
	// when either referenced product does not exist.
	CreateElimination(ctx context.Context, rec *model.EliminatedSuggestion) error

	// ConfirmLink creates the active link for a supplier product inside one
	// transaction: the prior link (if any, to a different catalog product) is
	// marked superseded, the supplier product flips to confirmed. Confirming
	// the currently linked catalog product again returns the existing link.
	ConfirmLink(ctx context.Context, supplierProductID, catalogProductID uint, method, actor string, score, priceOverride *float64) (*model.MatchLink, error)

	// SetPriceOverride edits the price override on the active link
	SetPriceOverride(ctx context.Context, supplierProductID uint, price *float64) (*model.MatchLink, error)

	CreateSupplierProducts(ctx context.Context, rows []model.SupplierProduct) error
}
