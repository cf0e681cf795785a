package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ============================================================
// Configuration
// ============================================================

// DefaultFile is read when FLOORPLAN_CONFIG is not set.
const DefaultFile = "floorplan.toml"

type Config struct {
	Port         string `toml:"port"`
	Environment  string `toml:"env"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`

	DBPath    string `toml:"db_path"`
	ExportDir string `toml:"export_dir"`

	// RasterScale is the PNG device scale.
	RasterScale float64 `toml:"raster_scale"`
	// CaptureSupported reports whether this host accepts room scans.
	CaptureSupported bool `toml:"capture_supported"`
}

func Default() *Config {
	return &Config{
		Port:             "3000",
		Environment:      "development",
		ReadTimeout:      10,
		WriteTimeout:     10,
		DBPath:           "data/db/floorplan.db",
		ExportDir:        "data/exports",
		RasterScale:      2,
		CaptureSupported: true,
	}
}

// Load builds the configuration from defaults, the TOML file and then
// environment variables, in that order. An unreadable file is logged and
// skipped.
func Load() *Config {
	path := getEnv("FLOORPLAN_CONFIG", DefaultFile)
	cfg, err := LoadFile(path)
	if err != nil {
		log.Printf("[CONFIG] Ignoring %s: %v", path, err)
		cfg = Default()
	}
	applyEnv(cfg)
	return cfg
}

// LoadFile reads path over the defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("ENV", cfg.Environment)
	cfg.ReadTimeout = getEnvAsInt("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.DBPath = getEnv("FLOORPLAN_DB_PATH", cfg.DBPath)
	cfg.ExportDir = getEnv("FLOORPLAN_EXPORT_DIR", cfg.ExportDir)
	cfg.RasterScale = getEnvAsFloat("FLOORPLAN_RASTER_SCALE", cfg.RasterScale)
	cfg.CaptureSupported = getEnvAsBool("FLOORPLAN_CAPTURE_SUPPORTED", cfg.CaptureSupported)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
