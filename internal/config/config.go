package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lunareth/FarfinderBot_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for authentication

	// Recognized resource kinds per inventory class. Deployments differ
	// (some track waterskins, some don't), so these are configuration,
	// not code.
	CharacterResources []string
	PoolResources      []string

	// Seed values used when the backing record does not exist yet.
	PoolDefaults domain.Inventory
	ShopCatalog  []domain.ShopItem

	// Webhook the core posts status announcements to. Empty disables
	// announcements.
	AnnounceURL string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "farfinder"),
		APIKey:      getEnv("API_KEY", ""),
		AnnounceURL: getEnv("ANNOUNCE_WEBHOOK_URL", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	cfg.CharacterResources = parseKinds(getEnv("CHARACTER_RESOURCES", "rations,material,tokens"))
	cfg.PoolResources = parseKinds(getEnv("POOL_RESOURCES", "rations,material"))

	cfg.PoolDefaults, err = parseQuantities(getEnv("POOL_DEFAULTS", "rations:50,material:50"))
	if err != nil {
		return nil, fmt.Errorf("invalid POOL_DEFAULTS: %w", err)
	}
	for kind := range cfg.PoolDefaults {
		if !contains(cfg.PoolResources, kind) {
			return nil, fmt.Errorf("POOL_DEFAULTS kind %q not in POOL_RESOURCES", kind)
		}
	}

	cfg.ShopCatalog, err = parseCatalog(getEnv("SHOP_CATALOG", "canteen:5:10,rope:3:25,lantern:8:6"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_CATALOG: %w", err)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// parseKinds splits a comma-separated list of resource kinds.
func parseKinds(s string) []string {
	var kinds []string
	for _, part := range strings.Split(s, ",") {
		if kind := strings.TrimSpace(part); kind != "" {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// parseQuantities parses "kind:qty,kind:qty" pairs.
func parseQuantities(s string) (domain.Inventory, error) {
	inv := make(domain.Inventory)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, qtyStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("expected kind:qty, got %q", part)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("bad quantity in %q", part)
		}
		inv[strings.TrimSpace(kind)] = qty
	}
	return inv, nil
}

// parseCatalog parses "name:price:stock" triples in catalog order.
func parseCatalog(s string) ([]domain.ShopItem, error) {
	var items []domain.ShopItem
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("expected name:price:stock, got %q", part)
		}
		price, err := strconv.Atoi(fields[1])
		if err != nil || price <= 0 {
			return nil, fmt.Errorf("bad price in %q", part)
		}
		stock, err := strconv.Atoi(fields[2])
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("bad stock in %q", part)
		}
		items = append(items, domain.ShopItem{
			Name:  strings.TrimSpace(fields[0]),
			Price: price,
			Stock: stock,
		})
	}
	return items, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
