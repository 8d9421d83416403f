package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BACKEND_MODE", "")
	t.Setenv("APP_PORT", "")

	cfg := Load()
	if cfg.Port != "8080" || cfg.BackendMode != BackendREST || cfg.APITimeout != 10*time.Second {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Seating.SeatsPerRow != 10 || cfg.Seating.SessionTTL != 30*time.Minute {
		t.Fatalf("seating defaults = %+v", cfg.Seating)
	}
	if cfg.QueueEnabled {
		t.Fatalf("queue should be off by default")
	}
}

func TestLoad_MySQLMode(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BACKEND_MODE", "MySQL")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "events")
	t.Setenv("DB_PORT", "")

	cfg := Load()
	if cfg.BackendMode != BackendMySQL || cfg.DBPort != "3306" || cfg.DBUser != "app" || cfg.DBMaxConns != 25 || cfg.DBMigrate {
		t.Fatalf("mysql config = %+v", cfg)
	}
}

func TestLoadSeatingConfig(t *testing.T) {
	t.Setenv("SEATS_PER_ROW", "12")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SESSION_MAX", "0")
	t.Setenv("MIRROR_TTL", "garbage")

	sc := LoadSeatingConfig()
	if sc.SeatsPerRow != 12 || sc.SessionTTL != 5*time.Minute {
		t.Fatalf("seating = %+v", sc)
	}
	if sc.SessionMax != 1 {
		t.Fatalf("SessionMax = %d, want clamped to 1", sc.SessionMax)
	}
	if sc.MirrorTTL != 10*time.Minute {
		t.Fatalf("MirrorTTL = %v, want default on parse error", sc.MirrorTTL)
	}

	t.Setenv("SEATS_PER_ROW", "-3")
	if got := LoadSeatingConfig().SeatsPerRow; got != 10 {
		t.Fatalf("SeatsPerRow = %d, want default 10", got)
	}
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "9")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")

	rl := LoadRateLimitConfig()
	if rl.Enabled || rl.Capacity != 9 || rl.RefillInterval != time.Minute {
		t.Fatalf("rate limit = %+v", rl)
	}
	if rl.TTL != 5*time.Minute {
		t.Fatalf("TTL = %v, want raised to 5 refills", rl.TTL)
	}
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")
	cc := LoadCacheConfig()
	if !cc.Methods["GET"] || !cc.Methods["HEAD"] || len(cc.Methods) != 2 {
		t.Fatalf("methods = %v", cc.Methods)
	}
	if cc.TTL != time.Minute || cc.Prefix != "layoutcache" {
		t.Fatalf("cache = %+v", cc)
	}
}

func TestRedisOptions(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_DB", "2")
	if o := RedisOptions(); o.Addr != "cache:6380" || o.DB != 2 || o.TLSConfig != nil {
		t.Fatalf("options = %+v", o)
	}
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_TLS", "true")
	if o := RedisOptions(); o.Addr != "redis:6379" || o.TLSConfig == nil {
		t.Fatalf("options = %+v", o)
	}
}

func TestRabbitURL(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	if got := RabbitURL(); got != "amqp://u:p@mq:5672/" {
		t.Fatalf("RabbitURL() = %q", got)
	}
}
