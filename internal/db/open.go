package db

import (
	"fmt"

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"
)

// Options selects the database behind the snapshot gateway
type Options struct {
	Driver     string // mysql or sqlite
	User       string // MySQL user
	Password   string // MySQL password
	Host       string // MySQL host
	Port       string // MySQL port
	Name       string // MySQL database name
	SQLitePath string // SQLite file, ":memory:" for a throwaway database
}

// DSN builds the MySQL Data Source Name
func (o Options) DSN() string {
	return o.User + ":" + o.Password + "@tcp(" + o.Host + ":" + o.Port + ")/" + o.Name + "?parseTime=true"
}

// Open connects to the configured database
func Open(o Options) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	switch o.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(o.DSN()), cfg)
	case "sqlite", "":
		path := o.SQLitePath
		if path == "" {
			path = "marketplace.db" // Default local file
		}
		return gorm.Open(sqlite.Open(path), cfg)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", o.Driver)
}
