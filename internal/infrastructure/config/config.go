// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Features FeatureFlags   `mapstructure:"features"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableMetrics   bool          `mapstructure:"enable_metrics"`
}

// ChatConfig contains the external recipe assistant endpoint configuration
type ChatConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Path    string        `mapstructure:"path"`
	UserID  string        `mapstructure:"user_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AssetsConfig contains ingredient image asset configuration
type AssetsConfig struct {
	BaseURL     string   `mapstructure:"base_url"`
	Placeholder string   `mapstructure:"placeholder"`
	Dir         string   `mapstructure:"dir"`
	Known       []string `mapstructure:"known"`
}

// CatalogConfig contains the static brand offer catalog
type CatalogConfig struct {
	Offers []OfferConfig `mapstructure:"offers"`
}

// OfferConfig is one brand offer entry
type OfferConfig struct {
	Brand         string `mapstructure:"brand"`
	UnitPrice     int    `mapstructure:"unit_price"`
	PackageWeight string `mapstructure:"package_weight"`
	Store         string `mapstructure:"store"`
}

// SessionConfig contains cookie session configuration
type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
}

// FeatureFlags contains feature toggles
type FeatureFlags struct {
	ClearRecipeOnCheckout bool `mapstructure:"clear_recipe_on_checkout"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/dishcart")
	}

	// Enable environment variable override
	v.SetEnvPrefix("DISHCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "DishCart")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.enable_metrics", true)

	// Chat endpoint defaults
	v.SetDefault("chat.base_url", "http://localhost:3000")
	v.SetDefault("chat.path", "/chat")
	v.SetDefault("chat.user_id", "guest")
	v.SetDefault("chat.timeout", "30s")

	// Asset defaults
	v.SetDefault("assets.base_url", "/static/ingredients")
	v.SetDefault("assets.placeholder", "/static/ingredients/placeholder.jpg")

	// Session defaults
	v.SetDefault("session.cookie_name", "dishcart-session")
	v.SetDefault("session.ttl", "24h")

	// Feature flag defaults
	v.SetDefault("features.clear_recipe_on_checkout", true)

	// Stock catalog, matching the brand shelf the frontend ships with
	v.SetDefault("catalog.offers", []map[string]interface{}{
		{"brand": "India Gate", "unit_price": 120, "package_weight": "1kg", "store": "Amazon"},
		{"brand": "Daawat", "unit_price": 100, "package_weight": "1kg", "store": "JioMart"},
		{"brand": "Organic Choice", "unit_price": 140, "package_weight": "500g", "store": "Flipkart"},
	})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Chat.BaseURL == "" {
		return fmt.Errorf("chat.base_url is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	for i, offer := range c.Catalog.Offers {
		if offer.Brand == "" || offer.Store == "" {
			return fmt.Errorf("catalog.offers[%d] requires brand and store", i)
		}
		if offer.UnitPrice < 0 {
			return fmt.Errorf("catalog.offers[%d] unit_price cannot be negative", i)
		}
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// ChatEndpoint returns the full URL of the recipe assistant endpoint
func (c *Config) ChatEndpoint() string {
	return strings.TrimRight(c.Chat.BaseURL, "/") + c.Chat.Path
}
