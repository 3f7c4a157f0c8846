package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the dashboard service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatasetPath     string
	ClusterSeed     int64
	ClusterDefaultK int
	ChartWidth      int
	ChartHeight     int
	LogLevel        string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SMD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Social Media Dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8050")
	v.SetDefault("dataset.path", "social_media_dataset.csv")
	v.SetDefault("cluster.seed", 42)
	v.SetDefault("cluster.default_k", 4)
	v.SetDefault("chart.width", 960)
	v.SetDefault("chart.height", 540)
	v.SetDefault("log.level", "info")

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatasetPath:     strings.TrimSpace(v.GetString("dataset.path")),
		ClusterSeed:     v.GetInt64("cluster.seed"),
		ClusterDefaultK: v.GetInt("cluster.default_k"),
		ChartWidth:      v.GetInt("chart.width"),
		ChartHeight:     v.GetInt("chart.height"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
	}

	if cfg.DatasetPath == "" {
		return Config{}, fmt.Errorf("dataset path must be provided")
	}

	if cfg.ClusterDefaultK < 2 || cfg.ClusterDefaultK > 10 {
		return Config{}, fmt.Errorf("cluster default k must be between 2 and 10, got %d", cfg.ClusterDefaultK)
	}

	if cfg.ChartWidth <= 0 || cfg.ChartHeight <= 0 {
		return Config{}, fmt.Errorf("chart size must be positive, got %dx%d", cfg.ChartWidth, cfg.ChartHeight)
	}

	return cfg, nil
}
