package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/crowdfund/infra/repository/model"
	"github.com/amirasaad/crowdfund/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the local store named by cnf.URL and creates its
// tables. "postgres://" and "postgresql://" URLs open postgres; "sqlite://"
// URLs (and bare file paths) open sqlite. A sqlite store is limited to a single
// connection so that writes are serialized.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.URL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	dialector, isSQLite := dialectorFor(cnf.URL)
	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cnf.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}

	if err := connection.AutoMigrate(model.All()...); err != nil {
		return nil, fmt.Errorf("failed to create local store tables: %w", err)
	}

	return connection, nil
}

func dialectorFor(url string) (gorm.Dialector, bool) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), true
	default:
		return sqlite.Open(url), true
	}
}
