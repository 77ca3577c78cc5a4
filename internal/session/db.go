package session

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Marat1506/apple-admin/internal/config"
)

// Open connects the session database. The default is a local sqlite
// file so the console runs next to any storefront without extra
// infrastructure; mysql is available for shared deployments.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	switch cfg.Driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DSN), gcfg)
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DSN), gcfg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.Driver)
	}
}
