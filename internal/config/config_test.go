package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Errorf("expected default driver sqlite, got %s", cfg.DB.Driver)
	}
	if cfg.AppUsers.HashPasswords {
		t.Error("expected password hashing to be off by default")
	}
	if len(cfg.HTTP.CORSAllowOrigins) != 1 || cfg.HTTP.CORSAllowOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.HTTP.CORSAllowOrigins)
	}
}

func TestLoad_MySQLFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DATABASE", "fleet")
	t.Setenv("DB_BOOTSTRAP_SCHEMA", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.MySQL.Host != "db.internal" || cfg.DB.MySQL.Port != 3307 {
		t.Errorf("unexpected mysql address %s:%d", cfg.DB.MySQL.Host, cfg.DB.MySQL.Port)
	}
	if !cfg.DB.BootstrapSchema {
		t.Error("expected bootstrap schema to be enabled")
	}
	if len(cfg.HTTP.CORSAllowOrigins) != 2 || cfg.HTTP.CORSAllowOrigins[1] != "http://b.example" {
		t.Errorf("unexpected CORS origins %v", cfg.HTTP.CORSAllowOrigins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"unknown driver", "DB_DRIVER", "postgres"},
		{"zero pool", "DB_MAX_OPEN_CONNS", "0"},
		{"negative rate limit", "RATE_LIMIT_RPS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
