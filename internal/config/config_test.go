package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "formation-editor-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "formation-editor-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}


func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults to memory", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("sqlite keeps path", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " SQLite ")
		t.Setenv("SQLITE_PATH", "/tmp/editor.db")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageSQLite || cfg.SQLitePath != "/tmp/editor.db" {
			t.Fatalf("unexpected sqlite config: %q %q", cfg.StorageDriver, cfg.SQLitePath)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})
}

func TestLoad_EditorAndAuditConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.EditorSessionTTL != 30*time.Minute || cfg.EditorSweepInterval != time.Minute {
			t.Fatalf("unexpected editor timings: ttl=%s sweep=%s", cfg.EditorSessionTTL, cfg.EditorSweepInterval)
		}
		if cfg.AuditWorkerCount != 4 {
			t.Fatalf("unexpected audit worker count: %d", cfg.AuditWorkerCount)
		}
	})

	t.Run("audit workers out of range", func(t *testing.T) {
		t.Setenv("AUDIT_WORKER_COUNT", "65")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for AUDIT_WORKER_COUNT=65")
		}
	})

	t.Run("non positive session ttl", func(t *testing.T) {
		t.Setenv("EDITOR_SESSION_TTL", "-1m")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative EDITOR_SESSION_TTL")
		}
	})
}

func TestLoad_FormationSinkConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("requires url when enabled", func(t *testing.T) {
		t.Setenv("FORMATION_SINK_ENABLED", "true")
		t.Setenv("FORMATION_SINK_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when FORMATION_SINK_ENABLED=true without FORMATION_SINK_URL")
		}
	})

	t.Run("rejects relative url", func(t *testing.T) {
		t.Setenv("FORMATION_SINK_ENABLED", "true")
		t.Setenv("FORMATION_SINK_URL", "/save")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for relative FORMATION_SINK_URL")
		}
	})

	t.Run("parses sink and circuit", func(t *testing.T) {
		t.Setenv("FORMATION_SINK_ENABLED", "true")
		t.Setenv("FORMATION_SINK_URL", "https://sink.example.com/save")
		t.Setenv("FORMATION_SINK_TIMEOUT", "2s")
		t.Setenv("FORMATION_SINK_RETRIES", "4")
		t.Setenv("FORMATION_SINK_CIRCUIT_ENABLED", "false")
		t.Setenv("FORMATION_SINK_CIRCUIT_FAILURE_COUNT", "7")
		t.Setenv("FORMATION_SINK_CIRCUIT_OPEN_TIMEOUT", "30s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.FormationSinkEnabled || cfg.FormationSinkURL != "https://sink.example.com/save" {
			t.Fatalf("unexpected sink config: %+v", cfg)
		}
		if cfg.FormationSinkTimeout != 2*time.Second || cfg.FormationSinkRetries != 4 {
			t.Fatalf("unexpected sink timing: timeout=%s retries=%d", cfg.FormationSinkTimeout, cfg.FormationSinkRetries)
		}
		circuit := cfg.FormationSinkCircuit
		if circuit.Enabled || circuit.FailureThreshold != 7 || circuit.OpenTimeout != 30*time.Second || circuit.HalfOpenMaxReq != 2 {
			t.Fatalf("unexpected circuit config: %+v", circuit)
		}
	})

	t.Run("invalid retries", func(t *testing.T) {
		t.Setenv("FORMATION_SINK_RETRIES", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative FORMATION_SINK_RETRIES")
		}
	})
}
