package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Export   ExportConfig
	CORS     CORSConfig
	Database DatabaseConfig
	S3       S3Config
	Log      LogConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"3000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ExportConfig параметры построения архивов
type ExportConfig struct {
	// Базовый каталог для рабочих директорий запросов; пусто — системный temp
	WorkDir       string `env:"EXPORT_WORK_DIR" envDefault:""`
	MaxUploadSize int64  `env:"EXPORT_MAX_UPLOAD_SIZE" envDefault:"33554432"`
	MaxFieldSize  int64  `env:"EXPORT_MAX_FIELD_SIZE" envDefault:"8388608"`
	// Уровень deflate для zip (1..9)
	CompressionLevel int `env:"ARCHIVE_COMPRESSION_LEVEL" envDefault:"9"`
}

// BaseDir возвращает каталог, в котором создаются рабочие директории
func (e ExportConfig) BaseDir() string {
	if e.WorkDir != "" {
		return e.WorkDir
	}
	return filepath.Join(os.TempDir(), "sheetpack")
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type DatabaseConfig struct {
	Enabled         bool          `env:"DB_ENABLED" envDefault:"false"`
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"sheetpack"`
	Password        string        `env:"DB_PASSWORD" envDefault:"secret"`
	Name            string        `env:"DB_NAME" envDefault:"sheetpack"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type S3Config struct {
	Enabled       bool          `env:"S3_ENABLED" envDefault:"false"`
	Endpoint      string        `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey     string        `env:"S3_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey     string        `env:"S3_SECRET_KEY" envDefault:"minioadmin"`
	Bucket        string        `env:"S3_BUCKET" envDefault:"exports"`
	UseSSL        bool          `env:"S3_USE_SSL" envDefault:"false"`
	PresignExpiry time.Duration `env:"S3_PRESIGN_EXPIRY" envDefault:"1h"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// json или console
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Export.CompressionLevel < 1 || cfg.Export.CompressionLevel > 9 {
		return nil, fmt.Errorf("invalid ARCHIVE_COMPRESSION_LEVEL %d: must be within 1..9", cfg.Export.CompressionLevel)
	}

	return cfg, nil
}
