// Package db opens the gorm connection used by the ticker and snapshot stores.
package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "pricing.db"
	retryInterval     = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver        string `yaml:"driver"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	SSLMode       string `yaml:"sslmode"`
	SQLitePath    string `yaml:"sqlite_path"`
	RunMigrations bool   `yaml:"run_migrations"`
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	var cfg Config
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv は設定済みの環境変数で値を上書きします。
func (c *Config) ApplyEnv() {
	setIfEnv(&c.Driver, "DB_DRIVER")
	setIfEnv(&c.User, "DB_USER")
	setIfEnv(&c.Password, "DB_PASSWORD")
	setIfEnv(&c.Name, "DB_NAME")
	setIfEnv(&c.Host, "DB_HOST")
	setIfEnv(&c.Port, "DB_PORT")
	setIfEnv(&c.SSLMode, "DB_SSLMODE")
	setIfEnv(&c.SQLitePath, "SQLITE_PATH")
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		c.RunMigrations, _ = strconv.ParseBool(v)
	}
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// BuildDSN は設定からドライバ用の接続文字列を生成します。
// Driver が未指定の場合は sqlite として扱います。
func BuildDSN(cfg Config) string {
	if strings.EqualFold(cfg.Driver, DriverPostgres) {
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslmode)
	}
	if cfg.SQLitePath == "" {
		return defaultSQLitePath
	}
	return cfg.SQLitePath
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor returns the Opener of the configured driver.
func OpenerFor(cfg Config) Opener {
	if strings.EqualFold(cfg.Driver, DriverPostgres) {
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// ConnectWithRetry は timeout を超えるまで retryInterval ごとに接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(retryInterval)
	}
}

// Open は接続を確立し、RunMigrations が有効な場合は models のマイグレーションを行います。
func Open(cfg Config, models ...any) (*gorm.DB, error) {
	if !strings.EqualFold(cfg.Driver, DriverPostgres) {
		if err := ensureDir(BuildDSN(cfg)); err != nil {
			return nil, err
		}
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, OpenerFor(cfg))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(cfg.Driver, DriverPostgres) {
		// SQLite は同時書き込みに弱いため接続を1本に制限
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if cfg.RunMigrations {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}

// ensureDir creates the parent directory of a sqlite file path.
func ensureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	return nil
}
