package services

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/mywallet/internal/cryptox"
	"github.com/dmitrijs2005/mywallet/internal/logging"
	"github.com/dmitrijs2005/mywallet/internal/server/config"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mywallet/internal/server/storetest"
)

// --- helpers ---

const testIterations = 1000

func newTestLogger(t *testing.T) (logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogLogger(slog.New(h)), &buf
}

func newManager(t *testing.T) *repomanager.SQLRepositoryManager {
	t.Helper()
	return repomanager.NewSQLRepositoryManager(storetest.NewSQLite(t), cryptox.NewPasswordHasher(testIterations))
}

func newTestConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		HashIterations:              testIterations,
	}
}
