package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Ledger backends
const (
	LedgerBackendMemory = "memory"
	LedgerBackendRPC    = "rpc"
)

// Config holds the application configuration
type Config struct {
	Environment string `validate:"required"`
	Version     string
	ServiceName string
	Port        int    `validate:"min=1,max=65535"`
	APIKey      string `validate:"required"` // API key for admin endpoints
	LogLevel    string
	LogFormat   string
	LogDir      string

	DBEnabled     bool
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int
	DBMaxIdle     time.Duration
	DBMaxLife     time.Duration
	DBAutoMigrate bool

	RaffleCycleDuration     time.Duration `validate:"gt=0"`
	RaffleBalanceTimeout    time.Duration `validate:"gt=0"`
	RaffleSettlementTimeout time.Duration `validate:"gt=0"`
	RafflePersistTimeout    time.Duration `validate:"gt=0"`
	RaffleSnapshotCron      string

	LedgerBackend         string `validate:"oneof=memory rpc"`
	LedgerRPCURL          string `validate:"required_if=LedgerBackend rpc,omitempty,url"`
	LedgerContractAddress string `validate:"required_if=LedgerBackend rpc"`
	LedgerCacheTTL        time.Duration
	LedgerCacheSize       int
	LedgerSeed            string

	DiscordWebhookID    string
	DiscordWebhookToken string

	RedisAddr    string
	RedisChannel string

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	WorkerCount     int `validate:"gte=1"`
	WorkerQueueSize int `validate:"gte=1"`

	RateLimitPerSecond int
	RateLimitBurst     int
	TrustedProxies     []string
	CatalogPath        string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "pirot-raffle"),
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		DBEnabled:     getEnvBool("DB_ENABLED", false),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "pirotraffle"),
		DBMaxIdle:     getEnvSeconds("DB_MAX_IDLE_SECONDS", 300),
		DBMaxLife:     getEnvSeconds("DB_MAX_LIFE_SECONDS", 3600),
		DBAutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),

		RaffleCycleDuration:     getEnvSeconds("RAFFLE_CYCLE_SECONDS", 1800),
		RaffleBalanceTimeout:    getEnvSeconds("RAFFLE_BALANCE_TIMEOUT_SECONDS", 60),
		RaffleSettlementTimeout: getEnvSeconds("RAFFLE_SETTLEMENT_TIMEOUT_SECONDS", 60),
		RafflePersistTimeout:    getEnvSeconds("RAFFLE_PERSIST_TIMEOUT_SECONDS", 5),
		RaffleSnapshotCron:      getEnv("RAFFLE_SNAPSHOT_CRON", "@every 5m"),

		LedgerBackend:         strings.ToLower(getEnv("LEDGER_BACKEND", LedgerBackendMemory)),
		LedgerRPCURL:          getEnv("LEDGER_RPC_URL", ""),
		LedgerContractAddress: getEnv("LEDGER_CONTRACT_ADDRESS", ""),
		LedgerCacheTTL:        getEnvSeconds("LEDGER_CACHE_TTL_SECONDS", 10),
		LedgerSeed:            getEnv("LEDGER_SEED", ""),

		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisChannel: getEnv("REDIS_CHANNEL", "pirot:raffle"),

		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		CatalogPath:    getEnv("RAFFLE_CATALOG_PATH", ""),

		EventRetryDelay:     getEnvSeconds("EVENT_RETRY_DELAY_SECONDS", 2),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", "logs/event_deadletter.jsonl"),
	}

	ints := []struct {
		key  string
		def  string
		dest *int
	}{
		{"PORT", "8080", &cfg.Port},
		{"DB_MAX_CONNS", "10", &cfg.DBMaxConns},
		{"LEDGER_CACHE_SIZE", "1024", &cfg.LedgerCacheSize},
		{"EVENT_MAX_RETRIES", "5", &cfg.EventMaxRetries},
		{"WORKER_COUNT", "4", &cfg.WorkerCount},
		{"WORKER_QUEUE_SIZE", "100", &cfg.WorkerQueueSize},
		{"RATE_LIMIT_PER_SECOND", "5", &cfg.RateLimitPerSecond},
		{"RATE_LIMIT_BURST", "10", &cfg.RateLimitBurst},
	}
	for _, item := range ints {
		v, err := strconv.Atoi(getEnv(item.key, item.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", item.key, err)
		}
		*item.dest = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded configuration for consistency
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultSeconds)))
	if err != nil || v < 0 {
		v = defaultSeconds
	}
	return time.Duration(v) * time.Second
}

// splitList parses a comma-separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DiscordEnabled reports whether webhook notifications are configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
