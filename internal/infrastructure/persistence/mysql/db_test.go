package mysql

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debit-worker/internal/infrastructure/config"
)

func TestNewDB_DSN(t *testing.T) {
	// 実際のDB接続はテスト環境に依存するため、設定のみテスト
	cfg := &config.DatabaseConfig{
		Host:            "localhost",
		Port:            3306,
		User:            "root",
		Password:        "password",
		Database:        "test_db",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}

	dsn := cfg.DSN()
	assert.NotEmpty(t, dsn)
	assert.Contains(t, dsn, "root")
	assert.Contains(t, dsn, "password")
	assert.Contains(t, dsn, "test_db")
}

func TestDB_HealthCheck(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	db := &DB{DB: sqlDB}

	mock.ExpectPing()

	err = db.HealthCheck()
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_Close(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := &DB{DB: sqlDB}

	mock.ExpectClose()

	err = db.Close()
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
