// Package testutils holds helpers shared by the package tests: a throwaway
// local store, a quiet logger and a fake platform API.
package testutils

import (
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/crowdfund/infra"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite local store with every table created.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := infra.NewDBConnection(&config.DB{URL: "sqlite://:memory:"}, "test")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewLogger returns a logger that discards everything.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
