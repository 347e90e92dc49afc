// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// minJWTSecretLength はHS256署名鍵として受け付ける最小バイト数。
const minJWTSecretLength = 16

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL       string        `env:"DATABASE_URL,notEmpty"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	AutoMigrate       bool          `env:"AUTO_MIGRATE" envDefault:"false"`

	// Token
	JWTSecret string        `env:"JWT_SECRET,notEmpty"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Password
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Server
	ServerPort     string `env:"SERVER_PORT" envDefault:"3000"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`

	// CORS
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
}

// Load は.envファイル（存在する場合）と環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate はタグだけでは表現できない制約を検証する。
func (c *Config) validate() error {
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("TOKEN_TTL must not be negative: %s", c.TokenTTL)
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		return fmt.Errorf("database pool sizes must not be negative")
	}
	return nil
}

// loadEnvFile は.envファイルを読み込む。ファイルが存在しない場合はスキップする。
// 既に設定済みの環境変数は上書きしない。
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
