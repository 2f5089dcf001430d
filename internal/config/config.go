package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend string // "redis" | "memory"
	SeedFile     string // optional path to a first-run category seed file

	BrowserSource    string        // "chrome" | "chromium" | "brave" | "edge" | "firefox" | "safari"
	BrowserStorePath string        // optional custom path to the native bookmark store
	PreviewTimeout   time.Duration // timeout for preview image fetches

	// Redis (only consulted when StoreBackend == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LINKDECK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LINKDECK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKDECK_PRETTY_LOG", true),

		// Persistence
		StoreBackend: getenv("LINKDECK_STORE", "redis"),
		SeedFile:     getenv("LINKDECK_SEED_FILE", ""),

		// Native bookmark source and preview fetches
		BrowserSource:    getenv("LINKDECK_BROWSER_SOURCE", "chrome"),
		BrowserStorePath: getenv("LINKDECK_BROWSER_STORE_PATH", ""),
		PreviewTimeout:   mustDuration("LINKDECK_PREVIEW_TIMEOUT", 5*time.Second),

		// Redis settings
		RedisUser:           getenv("LINKDECK_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LINKDECK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKDECK_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("LINKDECK_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("LINKDECK_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("LINKDECK_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("LINKDECK_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("LINKDECK_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("LINKDECK_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("LINKDECK_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("LINKDECK_REDIS_PING_TIMEOUT", 5*time.Second),
	}

	switch cfg.StoreBackend {
	case "redis":
		cfg.RedisAddr = requireEnv("LINKDECK_REDIS_ADDR")
	case "memory":
		// nothing to resolve; state lives for the process lifetime
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown LINKDECK_STORE backend %q (want redis or memory)", cfg.StoreBackend))
	}

	switch cfg.BrowserSource {
	case "chrome", "chromium", "brave", "edge", "firefox", "safari":
	default:
		panic(fmt.Sprintf("❌ FATAL: Unknown LINKDECK_BROWSER_SOURCE %q", cfg.BrowserSource))
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
