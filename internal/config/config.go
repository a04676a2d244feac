package config

import (
	"event_marketplace/internal/db" // Database options

	"github.com/caarlos0/env/v10" // Struct based env parsing
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort   string `env:"APP_PORT" envDefault:"8080"` // Application port
	IsProd    bool   `env:"IS_PROD"`                    // Is production environment
	JWTSecret string `env:"JWT_SECRET,notEmpty"`        // Session token signing key

	DB    Database `envPrefix:"DB_"`
	Redis Redis    `envPrefix:"REDIS_"`
	AMQP  AMQP     `envPrefix:"AMQP_"`
	Log   Log      `envPrefix:"LOG_"`
	Seed  Seed
}

// Database selects the snapshot store
type Database struct {
	Driver     string `env:"DRIVER" envDefault:"sqlite"`              // mysql or sqlite
	User       string `env:"USER"`                                    // Database user
	Password   string `env:"PASSWORD"`                                // Database password
	Host       string `env:"HOST" envDefault:"127.0.0.1"`             // Database host
	Port       string `env:"PORT" envDefault:"3306"`                  // Database port
	Name       string `env:"NAME"`                                    // Database name
	SQLitePath string `env:"SQLITE_PATH" envDefault:"marketplace.db"` // SQLite file
}

// Options converts the settings for db.Open
func (d Database) Options() db.Options {
	return db.Options{
		Driver:     d.Driver,
		User:       d.User,
		Password:   d.Password,
		Host:       d.Host,
		Port:       d.Port,
		Name:       d.Name,
		SQLitePath: d.SQLitePath,
	}
}

// Redis holds the session store connection; an empty Addr keeps sessions in memory
type Redis struct {
	Addr string `env:"ADDR"` // Redis server address
	Pass string `env:"PASS"` // Redis password
	DB   int    `env:"DB"`   // Redis database number
}

// AMQP holds the event publisher connection; an empty URL disables publishing
type AMQP struct {
	URL      string `env:"URL"`
	Exchange string `env:"EXCHANGE" envDefault:"marketplace.events"`
}

// Log configures logrus
type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"` // text or json
}

// Seed holds the pre-seeded admin and the password given to approved vendors
type Seed struct {
	AdminUsername         string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword         string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	VendorDefaultPassword string `env:"VENDOR_DEFAULT_PASSWORD" envDefault:"vendor123"`
}

// LoadConfig loads configuration from .env and environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err // Missing required keys or malformed values
	}
	return cfg, nil
}
