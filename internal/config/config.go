package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything an ingestion run needs to know up front.
type Config struct {
	DataDir string
	Sources Sources

	DBDriver           string // "sqlite" or "postgres"
	DBPath             string // sqlite file, deleted and recreated every run
	DatabaseDSN        string // postgres only
	EnforceForeignKeys bool
	BatchSize          int // 0 inserts each table with a single statement

	RabbitMQURL string // empty disables event publishing
	LogLevel    string
}

// Sources names the JSON document for each table.
type Sources struct {
	Users      string
	Products   string
	Orders     string
	OrderItems string
	Payments   string
}

// SetDefaults registers the fixed file names and store path.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("USERS_FILE", "users.json")
	v.SetDefault("PRODUCTS_FILE", "products.json")
	v.SetDefault("ORDERS_FILE", "orders.json")
	v.SetDefault("ORDER_ITEMS_FILE", "order_items.json")
	v.SetDefault("PAYMENTS_FILE", "payments.json")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "ecom.db")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("ENFORCE_FOREIGN_KEYS", true)
	v.SetDefault("BATCH_SIZE", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads the configuration from v, falling back to the defaults.
// Environment variables are consulted with the ECOM_ prefix.
func Load(v *viper.Viper) Config {
	SetDefaults(v)
	v.SetEnvPrefix("ECOM")
	v.AutomaticEnv()

	return Config{
		DataDir: v.GetString("DATA_DIR"),
		Sources: Sources{
			Users:      v.GetString("USERS_FILE"),
			Products:   v.GetString("PRODUCTS_FILE"),
			Orders:     v.GetString("ORDERS_FILE"),
			OrderItems: v.GetString("ORDER_ITEMS_FILE"),
			Payments:   v.GetString("PAYMENTS_FILE"),
		},
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:             v.GetString("DB_PATH"),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		EnforceForeignKeys: v.GetBool("ENFORCE_FOREIGN_KEYS"),
		BatchSize:          v.GetInt("BATCH_SIZE"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}
}

// SourcePath resolves a source file name against DataDir.
// Absolute names are returned unchanged.
func (c Config) SourcePath(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
