package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nutriswap/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	productKeyPrefix = "product:"
	poolKeyPrefix    = "pool:"
)

var barcodePattern = regexp.MustCompile(`^[0-9]{4,24}$`)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL       time.Duration
	PoolTTL        time.Duration
	SearchPageSize int
	PoolSize       int
	Rules          domain.RuleSet
	Substitution   SubstituteConfig
}

// ProductService handles product lookup with caching and runs the health
// analysis and substitute search on the results
type ProductService struct {
	cache          domain.CacheRepository
	foodDB         domain.FoodDatabase
	analyzer       *HealthAnalyzer
	finder         *SubstituteFinder
	preprocessor   *QueryPreprocessor
	cacheTTL       time.Duration
	poolTTL        time.Duration
	searchPageSize int
	poolSize       int
	logger         *zap.Logger
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	foodDB domain.FoodDatabase,
	config ProductServiceConfig,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	poolTTL := config.PoolTTL
	if poolTTL == 0 {
		poolTTL = 6 * time.Hour
	}
	searchPageSize := config.SearchPageSize
	if searchPageSize <= 0 {
		searchPageSize = 24
	}
	poolSize := config.PoolSize
	if poolSize <= 0 {
		poolSize = 30
	}

	return &ProductService{
		cache:          cache,
		foodDB:         foodDB,
		analyzer:       NewHealthAnalyzer(config.Rules),
		finder:         NewSubstituteFinder(config.Rules, config.Substitution),
		preprocessor:   NewQueryPreprocessor(logger),
		cacheTTL:       cacheTTL,
		poolTTL:        poolTTL,
		searchPageSize: searchPageSize,
		poolSize:       poolSize,
		logger:         logger.Named("products"),
	}
}

// LookupBarcode returns the product for a barcode.
// Flow: validate -> check cache -> fetch from food database -> cache -> return
func (s *ProductService) LookupBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	barcode = strings.TrimSpace(barcode)
	if !barcodePattern.MatchString(barcode) {
		return nil, fmt.Errorf("%w: barcode must be 4 to 24 digits", domain.ErrInvalidRequest)
	}

	cacheKey := productKeyPrefix + barcode

	var cached domain.Product
	if s.getFromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	product, err := s.foodDB.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}

	s.setInCache(ctx, cacheKey, product, s.cacheTTL)
	return product, nil
}

// SearchByName runs a cleaned full-text search for a product name
func (s *ProductService) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	query := s.preprocessor.PreprocessQuery(name)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", domain.ErrInvalidRequest)
	}

	result, err := s.foodDB.SearchProducts(ctx, query, s.searchPageSize)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Products) == 0 {
		return nil, domain.ErrProductNotFound
	}

	return result.Products, nil
}

// CandidatePool returns popular products from the product's primary
// category. Fetch failures yield an empty pool.
func (s *ProductService) CandidatePool(ctx context.Context, product *domain.Product) []domain.Product {
	if product == nil {
		return []domain.Product{}
	}

	category := product.PrimaryCategory()
	cacheKey := poolKeyPrefix + category

	var cached []domain.Product
	if s.getFromCache(ctx, cacheKey, &cached) {
		return cached
	}

	result, err := s.foodDB.SearchCategory(ctx, category, s.poolSize)
	if err != nil {
		s.logger.Warn("candidate pool fetch failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return []domain.Product{}
	}
	if result == nil || result.Products == nil {
		return []domain.Product{}
	}

	s.setInCache(ctx, cacheKey, result.Products, s.poolTTL)
	return result.Products
}

// Analyze returns the warnings for product under profile
func (s *ProductService) Analyze(product *domain.Product, profile domain.HealthProfile) []domain.Warning {
	return s.analyzer.Analyze(product, profile)
}

// SubstitutesFromPool filters a caller-supplied pool
func (s *ProductService) SubstitutesFromPool(
	product *domain.Product,
	profile domain.HealthProfile,
	pool []domain.Product,
) []domain.Product {
	return s.finder.FindSubstitutes(product, profile, pool)
}

// FindSubstitutes fetches the candidate pool for product and filters it
func (s *ProductService) FindSubstitutes(
	ctx context.Context,
	product *domain.Product,
	profile domain.HealthProfile,
) []domain.Product {
	if product == nil {
		return []domain.Product{}
	}
	return s.finder.FindSubstitutes(product, profile, s.CandidatePool(ctx, product))
}

// Report bundles a product with its summary, warnings and, when
// withSubstitutes is set, its substitutes
func (s *ProductService) Report(
	ctx context.Context,
	product *domain.Product,
	profile domain.HealthProfile,
	withSubstitutes bool,
) *domain.ProductReport {
	report := &domain.ProductReport{
		Product:     *product,
		Summary:     s.Summarize(product),
		Warnings:    s.Analyze(product, profile),
		Substitutes: []domain.Product{},
	}
	if withSubstitutes {
		report.Substitutes = s.FindSubstitutes(ctx, product, profile)
	}
	return report
}

// Summarize builds the per-100g display breakdown of a product
func (s *ProductService) Summarize(product *domain.Product) domain.NutritionSummary {
	n := product.Nutriments
	return domain.NutritionSummary{
		Code:            product.Code,
		ProductName:     product.Name,
		EnergyKcal:      n.EnergyKcalPer100g(),
		Fat:             n.FatPer100g(),
		SaturatedFat:    n.SaturatedFatPer100g(),
		Sugars:          n.SugarsPer100g(),
		Salt:            n.SaltPer100g(),
		Per:             "100g",
		NutriScoreGrade: product.NutriScoreGrade,
		EcoScoreGrade:   product.EcoScoreGrade,
		StoreCount:      product.StoreCount(),
		CountryCount:    product.CountryCount(),
	}
}

// Rules returns the loaded condition rules
func (s *ProductService) Rules() domain.RuleSet {
	return s.analyzer.Rules()
}

// getFromCache decodes a cached value into out and reports whether it hit
func (s *ProductService) getFromCache(ctx context.Context, key string, out interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// setInCache stores a value; failures are logged but never returned
func (s *ProductService) setInCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
