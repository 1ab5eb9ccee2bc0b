package config

import (
	"testing"
	"time"
)

// TestLoadConfig_Defaults 测试默认配置
func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DATABRICKS_BASE_URL", "")
	t.Setenv("DATABRICKS_TOKEN", "")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 8001 {
		t.Errorf("default port = %d, want 8001", cfg.Server.Port)
	}
	if cfg.Database.Path != "./data/vegax.db" {
		t.Errorf("default database path = %q, want ./data/vegax.db", cfg.Database.Path)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("default auto migrate should be true")
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", cfg.Upstream.Timeout)
	}
}

// TestLoadConfig_EnvOverrides 测试环境变量覆盖
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABRICKS_BASE_URL", "https://other.databricks.com/serving-endpoints/shipping-price/")
	t.Setenv("DATABRICKS_TOKEN", "dapi-from-env")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "10")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("database path = %q, want /tmp/test.db", cfg.Database.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	// 末尾斜杠被去除
	if cfg.Upstream.BaseURL != "https://other.databricks.com/serving-endpoints/shipping-price" {
		t.Errorf("base URL = %q, trailing slash should be stripped", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Token != "dapi-from-env" {
		t.Errorf("token = %q, want dapi-from-env", cfg.Upstream.Token)
	}
	if cfg.Upstream.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Upstream.Timeout)
	}
}

// TestLoadConfig_InvalidEnvValues 测试非法环境变量回落默认值
func TestLoadConfig_InvalidEnvValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "-5")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.Server.Port != 8001 {
		t.Errorf("port with invalid env = %d, want default 8001", cfg.Server.Port)
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Errorf("timeout with invalid env = %v, want default 30s", cfg.Upstream.Timeout)
	}
}
