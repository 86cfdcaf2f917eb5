package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requiredEnv テストで使う最小限の必須環境変数
var requiredEnv = map[string]string{
	"API_KEY":        "test-api-key",
	"DB_ENDPOINT":    "localhost",
	"DB_USER":        "worker",
	"DB_PASSWORD":    "secret",
	"DB_NAME":        "billing",
	"DEBIT_ENDPOINT": "https://debit.example.com/v1/transfer",
	"AUTH_SECRET":    "auth-secret",
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for k, v := range requiredEnv {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(t *testing.T)
		wantError   bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "正常系: 必須環境変数のみで読み込む",
			setupEnv: func(t *testing.T) {
				setRequiredEnv(t)
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "billing", cfg.Database.Database)
				assert.Equal(t, "test-api-key", cfg.Debit.APIKey)
				assert.Equal(t, "https://debit.example.com/v1/transfer", cfg.Debit.Endpoint)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 3306, cfg.Database.Port)
				assert.Equal(t, 10*time.Second, cfg.Debit.Timeout)
				assert.Equal(t, 1*time.Second, cfg.Debit.SettleDelay)
			},
		},
		{
			name: "正常系: 環境変数でチューニング値を上書きする",
			setupEnv: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("ENVIRONMENT", "production")
				t.Setenv("SERVER_PORT", "9000")
				t.Setenv("DB_PORT", "3307")
				t.Setenv("DEBIT_TIMEOUT", "5s")
				t.Setenv("SETTLE_DELAY", "250ms")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "production", cfg.Environment)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 3307, cfg.Database.Port)
				assert.Equal(t, 5*time.Second, cfg.Debit.Timeout)
				assert.Equal(t, 250*time.Millisecond, cfg.Debit.SettleDelay)
			},
		},
		{
			name: "異常系: API_KEYが未設定",
			setupEnv: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("API_KEY", "")
			},
			wantError: true,
		},
		{
			name: "異常系: DB_ENDPOINTが未設定",
			setupEnv: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("DB_ENDPOINT", "")
			},
			wantError: true,
		},
		{
			name: "異常系: DEBIT_ENDPOINTが未設定",
			setupEnv: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("DEBIT_ENDPOINT", "")
			},
			wantError: true,
		},
		{
			name: "異常系: DB_PASSWORDが未設定",
			setupEnv: func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("DB_PASSWORD", "")
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := &DatabaseConfig{
		Host:     "db.example.com",
		Port:     3306,
		User:     "worker",
		Password: "secret",
		Database: "billing",
	}

	dsn := cfg.DSN()
	assert.Equal(t, "worker:secret@tcp(db.example.com:3306)/billing?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestLoad_EnvNamesMatchRuntime(t *testing.T) {
	// 稼働環境の変数名が変わっていないことを押さえておく
	setRequiredEnv(t)
	for k := range requiredEnv {
		_, ok := os.LookupEnv(k)
		assert.True(t, ok, k)
	}
	_, err := Load()
	require.NoError(t, err)
}
