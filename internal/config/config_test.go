package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "ALLOWED_ORIGINS", "AWS_REGION", "S3_BUCKET", "CLOUDFRONT_DOMAIN",
	"DATABASE_PATH", "PUZZLE_MAX_ATTEMPTS", "BEDROCK_MODEL_ID", "SUGGEST_FALLBACK",
	"GENERATE_RATE_LIMIT", "LOG_LEVEL",
}

// clearEnv blanks every key; getEnv treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		wantPort string
		wantErr  bool
	}{
		{
			name: "すべての環境変数が設定されている",
			envVars: map[string]string{
				"PORT":                "8080",
				"ALLOWED_ORIGINS":     "http://localhost:5173;*.cloudfront.net",
				"AWS_REGION":          "ap-northeast-1",
				"S3_BUCKET":           "test-bucket",
				"CLOUDFRONT_DOMAIN":   "https://test.cloudfront.net",
				"DATABASE_PATH":       "data/games.db",
				"PUZZLE_MAX_ATTEMPTS": "100",
				"GENERATE_RATE_LIMIT": "10",
				"LOG_LEVEL":           "debug",
			},
			wantPort: "8080",
			wantErr:  false,
		},
		{
			name:     "デフォルト値が使用される",
			envVars:  map[string]string{},
			wantPort: "8080", // デフォルト
			wantErr:  false,
		},
		{
			name: "PORTのみカスタム",
			envVars: map[string]string{
				"PORT": "3000",
			},
			wantPort: "3000",
			wantErr:  false,
		},
		{
			name: "数値でない試行回数",
			envVars: map[string]string{
				"PUZZLE_MAX_ATTEMPTS": "many",
			},
			wantErr: true,
		},
		{
			name: "不正なフォールバック設定",
			envVars: map[string]string{
				"SUGGEST_FALLBACK": "maybe",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Port)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// デフォルト値の確認
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ap-northeast-1", cfg.AWSRegion)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "", cfg.DatabasePath)
	assert.Equal(t, 500, cfg.PuzzleMaxAttempts)
	assert.Equal(t, 30, cfg.GenerateRateLimit)
	assert.True(t, cfg.SuggestFallback)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.False(t, cfg.S3Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_AllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " http://localhost:*; ;*.cloudfront.net ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:*", "*.cloudfront.net"}, cfg.AllowedOrigins)
}

func TestConfig_Validation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:              "8080",
			AllowedOrigins:    []string{"http://localhost:5173"},
			AWSRegion:         "ap-northeast-1",
			PuzzleMaxAttempts: 500,
			GenerateRateLimit: 30,
			LogLevel:          "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "有効な設定", mutate: func(c *Config) {}, wantErr: false},
		{name: "不正なポート（文字列）", mutate: func(c *Config) { c.Port = "invalid" }, wantErr: true},
		{name: "空のポート", mutate: func(c *Config) { c.Port = "" }, wantErr: true},
		{name: "試行回数ゼロ", mutate: func(c *Config) { c.PuzzleMaxAttempts = 0 }, wantErr: true},
		{name: "レート制限ゼロ", mutate: func(c *Config) { c.GenerateRateLimit = 0 }, wantErr: true},
		{name: "不正なログレベル", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
