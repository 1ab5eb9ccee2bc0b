package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`              // 数据库文件路径
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大生命周期
	AutoMigrate     bool          `mapstructure:"auto_migrate"`      // 是否自动迁移
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// UpstreamConfig Databricks 模型服务配置
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"` // Serving Endpoint 基础 URL
	Token   string        `mapstructure:"token"`    // Bearer Token
	Timeout time.Duration `mapstructure:"timeout"`  // 单次调用超时
}

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
}

// LoadConfig 加载配置（简化版，暂不依赖 Viper）
func LoadConfig(configPath string) (*Config, error) {
	// 默认配置
	config := &Config{
		Server: ServerConfig{
			Port:     8001,
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Path:            "./data/vegax.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Upstream: UpstreamConfig{
			BaseURL: "https://wl-dbr-dbr-dev-ws-wl.cloud.databricks.com/serving-endpoints/shipping-price",
			Token:   "",
			Timeout: 30 * time.Second,
		},
	}

	// 支持环境变量覆盖
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		config.Database.Path = dbPath
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			config.Server.Port = p
		}
	}

	if baseURL := os.Getenv("DATABRICKS_BASE_URL"); baseURL != "" {
		config.Upstream.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	if token := os.Getenv("DATABRICKS_TOKEN"); token != "" {
		config.Upstream.Token = token
	}

	if timeout := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); timeout != "" {
		var seconds int
		if _, err := fmt.Sscanf(timeout, "%d", &seconds); err == nil && seconds > 0 {
			config.Upstream.Timeout = time.Duration(seconds) * time.Second
		}
	}

	return config, nil
}
