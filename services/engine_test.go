package services

import (
	"context"
	"testing"
	"time"

	"github.com/renecastillotv/clic-api-neon-sub000/config"
	"github.com/renecastillotv/clic-api-neon-sub000/database"
	"github.com/renecastillotv/clic-api-neon-sub000/database/dbtest"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	cfg := config.NewTagging(nil)
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	return NewEngineFromDatabase(database.New(db), cfg, opts...), db
}

func ctxT(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
