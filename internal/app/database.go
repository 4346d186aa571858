package app

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vinoteca/catalog/config"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.Type {
	case "sqlite":
		name := cfg.Name
		if name == "" {
			name = "vinoteca.db"
		}
		if !filepath.IsAbs(name) && name != ":memory:" {
			name = path.Join(workdir, "data", name)
		}
		if name != ":memory:" {
			_ = os.MkdirAll(filepath.Dir(name), 0o755)
		}
		dialector = sqlite.Open(name)
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	}

	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		zap.S().Fatalf("database connection failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Fatalf("database handle failed: %v", err)
	}
	if cfg.Type == "sqlite" {
		// one writer at a time for the sqlite file
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(orDefault(cfg.MaxConn, 100))
		sqlDB.SetMaxIdleConns(orDefault(cfg.IdleConn, 10))
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
