package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds Scrubber Service configuration
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	App     AppConfig     `json:"app" yaml:"app"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type AppConfig struct {
	MaxUploadBytes       int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	RetentionSeconds     int   `json:"retention_seconds" yaml:"retention_seconds"`
	SweepIntervalSeconds int   `json:"sweep_interval_seconds" yaml:"sweep_interval_seconds"`
	JPEGQuality          int   `json:"jpeg_quality" yaml:"jpeg_quality"`
	SweepWorkers         int   `json:"sweep_workers" yaml:"sweep_workers"`
}

type StorageConfig struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
	FSync   bool   `json:"fsync" yaml:"fsync"`
}

// RetentionWindow is the maximum age any stored object may reach before the
// sweeper reclaims it.
func (c AppConfig) RetentionWindow() time.Duration {
	return time.Duration(c.RetentionSeconds) * time.Second
}

// SweepInterval is the period between reclamation passes.
func (c AppConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":4001",
		},
		App: AppConfig{
			MaxUploadBytes:       50 * 1024 * 1024, // 50MB
			RetentionSeconds:     3600,
			SweepIntervalSeconds: 3600,
			JPEGQuality:          95,
			SweepWorkers:         4,
		},
		Storage: StorageConfig{
			DataDir: "./data",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "scrubber", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
