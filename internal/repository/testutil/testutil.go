package testutil

import (
	"context"
	"fmt"
	"linuxplus_backend/internal/model"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// DB opens a private in-memory SQLite database with every table migrated.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:linuxplus_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	// SQLite 只允许单写连接
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := autoMigrateAll(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return db
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.ChapterCompletion{},
		&model.QuizResult{},
	)
}

// MongoDB connects to TEST_MONGO_URI and returns a throwaway database that is
// dropped when the test ends. Tests are skipped when the variable is unset.
func MongoDB(tb testing.TB) *mongo.Database {
	tb.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		tb.Skip("set TEST_MONGO_URI to run mongo store integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		tb.Fatalf("connect mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		tb.Fatalf("ping mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("linuxplus_test_%d_%d", time.Now().UnixNano(), dbSeq.Add(1)))
	tb.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}
