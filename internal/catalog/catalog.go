package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/puntotecno/terminal/internal/cart"
	"github.com/puntotecno/terminal/internal/inventory"
	"github.com/puntotecno/terminal/pkg/config"
	"github.com/puntotecno/terminal/pkg/logger"
	"github.com/puntotecno/terminal/pkg/rest"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CachedProduct is one row of the local product snapshot. Prices are kept
// as strings so sqlite never rounds them.
type CachedProduct struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"index"`
	SKU          string `gorm:"index"`
	CategoryName string
	UnitPrice    string
	SalePrice    string
	Quantity     int
	MinStock     int
	IsActive     bool
}

func (CachedProduct) TableName() string {
	return "cached_products"
}

type syncState struct {
	ID       int64 `gorm:"primaryKey"`
	SyncedAt time.Time
}

func (syncState) TableName() string {
	return "sync_state"
}

// Cache is a local sqlite snapshot of the product catalog. It keeps product
// search fast and available while the sale screen is open; quantities in the
// snapshot become the stock ceilings handed to the cart.
type Cache struct {
	db      *gorm.DB
	svc     inventory.Service
	logg    *logger.Logger
	pageCap int
	maxAge  time.Duration
	now     func() time.Time
}

// New opens (or creates) the snapshot database and prepares its schema.
func New(cfg config.CatalogConfig, svc inventory.Service, logg *logger.Logger) (*Cache, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("catalog path required")
	}
	if svc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening catalog db: %w", err)
	}
	if err := db.AutoMigrate(&CachedProduct{}, &syncState{}); err != nil {
		return nil, fmt.Errorf("migrating catalog schema: %w", err)
	}

	return &Cache{
		db:      db,
		svc:     svc,
		logg:    logg,
		pageCap: cfg.PageCap,
		maxAge:  cfg.MaxAge,
		now:     time.Now,
	}, nil
}

// Sync replaces the whole snapshot with the remote product list. The swap
// happens in one transaction so a concurrent Search never sees a half-empty
// catalog.
func (c *Cache) Sync(ctx context.Context) error {
	page, err := c.svc.ListProducts(ctx, inventory.ProductListParams{
		ListParams: rest.ListParams{PageSize: c.pageCap},
	})
	if err != nil {
		return err
	}

	rows := make([]CachedProduct, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, CachedProduct{
			ID:           p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			CategoryName: p.CategoryName,
			UnitPrice:    p.UnitPrice.String(),
			SalePrice:    p.SalePrice.String(),
			Quantity:     p.Quantity,
			MinStock:     p.MinStock,
			IsActive:     p.IsActive,
		})
	}

	syncedAt := c.now()
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CachedProduct{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Save(&syncState{ID: 1, SyncedAt: syncedAt}).Error
	})
	if err != nil {
		return fmt.Errorf("replacing catalog snapshot: %w", err)
	}

	c.logg.Info(ctx, fmt.Sprintf("catalog synced, %d products", len(rows)))
	return nil
}

// Search matches active products by name or SKU, case-insensitive.
func (c *Cache) Search(ctx context.Context, term string, limit int) ([]CachedProduct, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []CachedProduct
	query := c.db.WithContext(ctx).Where("is_active = ?", true)
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(sku) LIKE ?", pattern, pattern)
	}
	if err := query.Order("name").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	return rows, nil
}

// Snapshot converts a cached row into what the cart needs: identity, sale
// price and the stock ceiling frozen at this moment.
func (p CachedProduct) Snapshot() (cart.ProductSnapshot, error) {
	price, err := decimal.NewFromString(p.SalePrice)
	if err != nil {
		return cart.ProductSnapshot{}, fmt.Errorf("parsing cached sale price for product %d: %w", p.ID, err)
	}
	return cart.ProductSnapshot{
		ID:             p.ID,
		Name:           p.Name,
		SKU:            p.SKU,
		SalePrice:      price,
		AvailableStock: p.Quantity,
	}, nil
}

// SyncedAt returns when the snapshot was last replaced, zero when never.
func (c *Cache) SyncedAt(ctx context.Context) (time.Time, error) {
	var state syncState
	err := c.db.WithContext(ctx).First(&state, 1).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("reading catalog sync state: %w", err)
	}
	return state.SyncedAt, nil
}

// Stale reports whether the snapshot is older than the configured max age.
func (c *Cache) Stale(ctx context.Context) (bool, error) {
	syncedAt, err := c.SyncedAt(ctx)
	if err != nil {
		return false, err
	}
	if syncedAt.IsZero() {
		return true, nil
	}
	return c.now().Sub(syncedAt) > c.maxAge, nil
}

// Close shuts down the snapshot database.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
