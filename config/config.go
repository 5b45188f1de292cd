package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nutriswap/backend/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	OpenFoodFacts OpenFoodFactsConfig
	Cache         CacheConfig
	RateLimit     RateLimitConfig
	Auth          AuthConfig
	Log           LogConfig
	Substitution  SubstitutionConfig
	Conditions    map[string]domain.ConditionRule
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration
type OpenFoodFactsConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	SearchPageSize int           `mapstructure:"search_page_size"`
	PoolSize       int           `mapstructure:"pool_size"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
	PoolTTL  time.Duration `mapstructure:"pool_ttl"`
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP    int `mapstructure:"per_ip"`
	Upstream int `mapstructure:"upstream"`
}

// AuthConfig holds session token verification settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// SubstitutionConfig holds the substitute finder tuning
type SubstitutionConfig struct {
	MaxResults        int     `mapstructure:"max_results"`
	MinStores         int     `mapstructure:"min_stores"`
	MinCountries      int     `mapstructure:"min_countries"`
	ImprovementFactor float64 `mapstructure:"improvement_factor"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriswap/")

	// Environment variable settings
	v.SetEnvPrefix("NUTRISWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Open Food Facts defaults
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("openfoodfacts.user_agent", "NutriSwap/1.0 (contact@nutriswap.app)")
	v.SetDefault("openfoodfacts.timeout", "30s")
	v.SetDefault("openfoodfacts.search_page_size", 24)
	v.SetDefault("openfoodfacts.pool_size", 30)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.pool_ttl", "6h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.upstream", 100)

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Substitution defaults
	v.SetDefault("substitution.max_results", 5)
	v.SetDefault("substitution.min_stores", 3)
	v.SetDefault("substitution.min_countries", 2)
	v.SetDefault("substitution.improvement_factor", 0.7)

	// Condition rules, grams per 100g
	v.SetDefault("conditions", map[string]interface{}{
		"diabetes": map[string]interface{}{
			"max_sugar_per_100g": 10.0,
		},
		"heart disease": map[string]interface{}{
			"max_saturated_fat_per_100g": 5.0,
		},
		"high cholesterol": map[string]interface{}{
			"max_saturated_fat_per_100g": 5.0,
		},
		"obesity": map[string]interface{}{
			"max_sugar_per_100g":         15.0,
			"max_saturated_fat_per_100g": 5.0,
		},
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OpenFoodFacts.BaseURL == "" {
		return fmt.Errorf("Open Food Facts base URL is required (set NUTRISWAP_OPENFOODFACTS_BASE_URL)")
	}
	if config.OpenFoodFacts.PoolSize <= 0 {
		return fmt.Errorf("candidate pool size must be positive, got: %d", config.OpenFoodFacts.PoolSize)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}
	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	s := config.Substitution
	if s.MaxResults <= 0 || s.MinStores <= 0 || s.MinCountries <= 0 {
		return fmt.Errorf("substitution limits must be positive")
	}
	if s.ImprovementFactor <= 0 || s.ImprovementFactor > 1 {
		return fmt.Errorf("substitution improvement factor must be in (0, 1], got: %v", s.ImprovementFactor)
	}

	for name, rule := range config.Conditions {
		if limit, ok := rule.SugarLimit(); ok && limit < 0 {
			return fmt.Errorf("condition %q: negative sugar limit", name)
		}
		if limit, ok := rule.SaturatedFatLimit(); ok && limit < 0 {
			return fmt.Errorf("condition %q: negative saturated fat limit", name)
		}
	}

	return nil
}

// Rules returns the condition table in the form the analyzers expect
func (c *Config) Rules() domain.RuleSet {
	rules := make(domain.RuleSet, len(c.Conditions))
	for name, rule := range c.Conditions {
		rules[name] = rule
	}
	return rules
}
