package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matching-service/internal/matching"
	"matching-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the postgres-backed Store
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SupplierProduct(ctx context.Context, id uint) (*model.SupplierProduct, error) {
	var sp model.SupplierProduct
	if err := s.db.WithContext(ctx).First(&sp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: supplier product %d", matching.ErrNotFound, id)
		}
		return nil, err
	}
	return &sp, nil
}

func (s *GormStore) CatalogProduct(ctx context.Context, id uint) (*model.CatalogProduct, error) {
	var cp model.CatalogProduct
	if err := s.db.WithContext(ctx).First(&cp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: catalog product %d", matching.ErrNotFound, id)
		}
		return nil, err
	}
	return &cp, nil
}

func (s *GormStore) ActiveCatalog(ctx context.Context) ([]model.CatalogProduct, error) {
	var products []model.CatalogProduct
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&products).Error
	return products, err
}

func (s *GormStore) UnmatchedSupplierProducts(ctx context.Context, supplierID uint, offset, limit int) ([]model.SupplierProduct, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.SupplierProduct{}).
		Where("match_status = ?", model.StatusUnmatched)
	if supplierID > 0 {
		query = query.Where("supplier_id = ?", supplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("id asc")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []model.SupplierProduct
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *GormStore) EliminatedFor(ctx context.Context, supplierProductID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&model.EliminatedSuggestion{}).
		Where("supplier_product_id = ?", supplierProductID).
		Pluck("catalog_product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (s *GormStore) IsEliminated(ctx context.Context, supplierProductID, catalogProductID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.EliminatedSuggestion{}).
		Where("supplier_product_id = ? AND catalog_product_id = ?", supplierProductID, catalogProductID).
		Count(&count).Error
	return count > 0, err
}

// CreateElimination verifies both products exist, then inserts with
// ON CONFLICT DO NOTHING so a repeated elimination stays a single row.
func (s *GormStore) CreateElimination(ctx context.Context, rec *model.EliminatedSuggestion) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := firstExists(tx, &model.SupplierProduct{}, rec.SupplierProductID, "supplier product"); err != nil {
			return err
		}
		if err := firstExists(tx, &model.CatalogProduct{}, rec.CatalogProductID, "catalog product"); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "supplier_product_id"}, {Name: "catalog_product_id"}},
			DoNothing: true,
		}).Create(rec).Error
	})
}

func (s *GormStore) ConfirmLink(ctx context.Context, supplierProductID, catalogProductID uint, method, actor string, score, priceOverride *float64) (*model.MatchLink, error) {
	var link *model.MatchLink
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sp model.SupplierProduct
		if err := tx.First(&sp, supplierProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: supplier product %d", matching.ErrNotFound, supplierProductID)
			}
			return err
		}
		if err := firstExists(tx, &model.CatalogProduct{}, catalogProductID, "catalog product"); err != nil {
			return err
		}

		var existing model.MatchLink
		err := tx.Where("supplier_product_id = ? AND active", supplierProductID).First(&existing).Error
		switch {
		case err == nil:
			if existing.CatalogProductID == catalogProductID {
				// Already linked to this catalog product: idempotent success
				link = &existing
				return nil
			}
			// Re-match to a different catalog product supersedes the old link
			now := time.Now()
			if err := tx.Model(&existing).
				Updates(map[string]interface{}{"active": false, "superseded_at": now}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No active link yet
		default:
			return err
		}

		created, err := insertActiveLink(tx, &model.MatchLink{
			SupplierProductID: supplierProductID,
			CatalogProductID:  catalogProductID,
			Method:            method,
			Actor:             actor,
			Score:             score,
			PriceOverride:     priceOverride,
			Active:            true,
			ConfirmedAt:       time.Now(),
		})
		if err != nil {
			return err
		}
		link = created

		return tx.Model(&sp).Update("match_status", model.StatusConfirmed).Error
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// insertActiveLink creates the link under a savepoint. When a concurrent
// confirm wins the race on the active-link unique index, the failed INSERT
// leaves a postgres transaction aborted, so the savepoint is rolled back
// before re-reading the winner: same target resolves to idempotent success,
// a different target is a conflict.
func insertActiveLink(tx *gorm.DB, link *model.MatchLink) (*model.MatchLink, error) {
	if err := tx.SavePoint("insert_link").Error; err != nil {
		return nil, err
	}
	if err := tx.Create(link).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		if rbErr := tx.RollbackTo("insert_link").Error; rbErr != nil {
			return nil, rbErr
		}
		var winner model.MatchLink
		if ferr := tx.Where("supplier_product_id = ? AND active", link.SupplierProductID).First(&winner).Error; ferr != nil {
			return nil, ferr
		}
		if winner.CatalogProductID == link.CatalogProductID {
			return &winner, nil
		}
		return nil, fmt.Errorf("%w: supplier product %d already linked to catalog product %d",
			matching.ErrConflict, link.SupplierProductID, winner.CatalogProductID)
	}
	return link, nil
}

func (s *GormStore) SetPriceOverride(ctx context.Context, supplierProductID uint, price *float64) (*model.MatchLink, error) {
	var link model.MatchLink
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("supplier_product_id = ? AND active", supplierProductID).First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no active match link for supplier product %d", matching.ErrNotFound, supplierProductID)
		}
		if err != nil {
			return err
		}
		return tx.Model(&link).Update("price_override", price).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *GormStore) CreateSupplierProducts(ctx context.Context, rows []model.SupplierProduct) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func firstExists(tx *gorm.DB, dest interface{}, id uint, kind string) error {
	err := tx.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", matching.ErrNotFound, kind, id)
	}
	return err
}
