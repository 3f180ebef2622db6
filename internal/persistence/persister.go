package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_cart/storefront/internal/cache"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/repository"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidCartLine = errors.New("invalid cart line")

const (
	BlobProducts = "products"
	BlobCart     = "cart"
)

// Persister stores the catalog and the cart as two independent blobs.
// Reads go through the cache when one is configured.
type Persister struct {
	repo      repository.BlobRepository
	cache     cache.BlobCache
	namespace string
	logger    *zap.Logger
	sfg       singleflight.Group // Prevents cache stampede
}

// NewPersister accepts a nil cache.
func NewPersister(repo repository.BlobRepository, c cache.BlobCache, namespace string, logger *zap.Logger) *Persister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Persister{
		repo:      repo,
		cache:     c,
		namespace: namespace,
		logger:    logger,
	}
}

func (p *Persister) key(blob string) string {
	return fmt.Sprintf("%s:%s", p.namespace, blob)
}

// Load restores the saved state. A missing or unreadable catalog falls back to
// dataset, a missing or unreadable cart falls back to an empty cart.
func (p *Persister) Load(ctx context.Context, dataset []domain.Product) storefront.State {
	products := dataset
	if data, ok := p.loadBlob(ctx, BlobProducts); ok {
		saved, err := catalog.ParseProducts(data)
		switch {
		case err != nil:
			p.logger.Warn("persisted catalog is unreadable, using dataset", zap.Error(err))
		case saved == nil:
			p.logger.Warn("persisted catalog is null, using dataset")
		default:
			products = saved
		}
	}

	cart := domain.Cart{Lines: []domain.CartLine{}}
	if data, ok := p.loadBlob(ctx, BlobCart); ok {
		lines, err := parseCartLines(data)
		if err != nil {
			p.logger.Warn("persisted cart is unreadable, starting empty", zap.Error(err))
		} else if lines != nil {
			cart.Lines = lines
		}
	}

	return storefront.New(products, cart)
}

// parseCartLines rejects lines that would skew the cart total.
func parseCartLines(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	for i, line := range lines {
		if line.Quantity <= 0 || line.Price.IsNegative() {
			return nil, fmt.Errorf("line %d (product %d): %w", i, line.ProductID, ErrInvalidCartLine)
		}
	}
	return lines, nil
}

func (p *Persister) loadBlob(ctx context.Context, blob string) ([]byte, bool) {
	key := p.key(blob)
	v, err, _ := p.sfg.Do(key, func() (interface{}, error) {
		if p.cache != nil {
			data, err := p.cache.Get(ctx, key)
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				p.logger.Warn("cache get error", zap.String("key", key), zap.Error(err))
			}
		}

		data, err := p.repo.Load(ctx, key)
		if err != nil {
			return nil, err
		}

		if p.cache != nil {
			if errSet := p.cache.Set(ctx, key, data); errSet != nil {
				p.logger.Warn("cache set error", zap.String("key", key), zap.Error(errSet))
			}
		}
		return data, nil
	})

	if err != nil {
		if !errors.Is(err, repository.ErrBlobNotFound) {
			p.logger.Warn("failed to load state blob", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return v.([]byte), true
}

func (p *Persister) SaveProducts(ctx context.Context, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products failed: %w", err)
	}
	return p.saveBlob(ctx, BlobProducts, data)
}

func (p *Persister) SaveCart(ctx context.Context, cart domain.Cart) error {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	return p.saveBlob(ctx, BlobCart, data)
}

func (p *Persister) saveBlob(ctx context.Context, blob string, data []byte) error {
	key := p.key(blob)
	if err := p.repo.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	if p.cache != nil {
		if err := p.cache.Delete(ctx, key); err != nil {
			p.logger.Warn("cache invalidate error", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (p *Persister) Close() error {
	return p.repo.Close()
}
