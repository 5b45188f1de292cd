// Package app wires configuration into the product service.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nutriswap/backend/config"
	"github.com/nutriswap/backend/internal/infrastructure/cache"
	"github.com/nutriswap/backend/internal/infrastructure/openfoodfacts"
	"github.com/nutriswap/backend/internal/usecase"
)

// Services holds the wired dependencies and the resources to release
type Services struct {
	Products *usecase.ProductService
	Cache    cache.Store
}

// Close releases the cache backend
func (s *Services) Close() error {
	return s.Cache.Close()
}

// New builds the cache, the Open Food Facts client and the product service
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	store, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s cache: %w", cfg.Cache.Type, err)
	}

	client := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		RequestsPerMinute: cfg.RateLimit.Upstream,
	}, logger)

	products := usecase.NewProductService(store, client, usecase.ProductServiceConfig{
		CacheTTL:       cfg.Cache.TTL,
		PoolTTL:        cfg.Cache.PoolTTL,
		SearchPageSize: cfg.OpenFoodFacts.SearchPageSize,
		PoolSize:       cfg.OpenFoodFacts.PoolSize,
		Rules:          cfg.Rules(),
		Substitution: usecase.SubstituteConfig{
			MaxResults:        cfg.Substitution.MaxResults,
			MinStores:         cfg.Substitution.MinStores,
			MinCountries:      cfg.Substitution.MinCountries,
			ImprovementFactor: cfg.Substitution.ImprovementFactor,
		},
	}, logger)

	return &Services{Products: products, Cache: store}, nil
}
