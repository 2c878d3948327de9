// Package database opens the taxonomy database and applies its migrations
package database

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/aethra/taxonomy/internal/config"
	"github.com/glebarez/sqlite"
	mysqlcfg "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported DB_DRIVER values
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Open connects to the database described by cfg
func Open(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// One writer keeps in-memory databases on a single connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Dialector returns the gorm dialector for cfg.Driver
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return postgres.Open(postgresDSN(cfg)), nil
	case DriverMySQL:
		return mysql.Open(mysqlDSN(cfg)), nil
	case DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func postgresDSN(cfg config.DatabaseConfig) string {
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	port := cfg.Port
	if port == "" {
		port = "3306"
	}
	c := mysqlcfg.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, port)
	c.DBName = cfg.Name
	c.ParseTime = true
	c.MultiStatements = true
	// Report matched rows so an unchanged UPDATE is not mistaken for a missing record.
	c.ClientFoundRows = true
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}
