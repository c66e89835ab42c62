package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the storefront service.
// It merges file defaults and environment overrides to support both local
// and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	AdminToken    string
	PartnerTokens map[string]string

	PhoneDedupWindow     time.Duration
	SubmitIPThreshold    int
	SubmitPhoneThreshold int
	SubmitRateWindow     time.Duration
	IdempotencyTTL       time.Duration
	DashboardCacheTTL    time.Duration
	Currency             string

	MailAPIURL   string
	MailAPIKey   string
	MailFrom     string
	MailOpsInbox string
	MailTimeout  time.Duration

	MaxDBConns         int32
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxClaimTTL     time.Duration
	OutboxMaxRetries   int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Auth struct {
		AdminToken    string            `yaml:"admin_token"`
		PartnerTokens map[string]string `yaml:"partner_tokens"`
	} `yaml:"auth"`
	Mail struct {
		APIURL   string `yaml:"api_url"`
		APIKey   string `yaml:"api_key"`
		From     string `yaml:"from"`
		OpsInbox string `yaml:"ops_inbox"`
	} `yaml:"mail"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific
// overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:            "storefront",
		HTTPPort:             8080,
		GRPCPort:             9090,
		PhoneDedupWindow:     5 * time.Minute,
		SubmitIPThreshold:    30,
		SubmitPhoneThreshold: 10,
		SubmitRateWindow:     time.Minute,
		IdempotencyTTL:       24 * time.Hour,
		DashboardCacheTTL:    time.Minute,
		Currency:             "INR",
		MailTimeout:          10 * time.Second,
		MaxDBConns:           20,
		OutboxPollInterval:   2 * time.Second,
		OutboxBatchSize:      100,
		OutboxClaimTTL:       30 * time.Second,
		OutboxMaxRetries:     5,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Auth.AdminToken != "" {
			cfg.AdminToken = f.Auth.AdminToken
		}
		if len(f.Auth.PartnerTokens) > 0 {
			cfg.PartnerTokens = f.Auth.PartnerTokens
		}
		if f.Mail.APIURL != "" {
			cfg.MailAPIURL = f.Mail.APIURL
		}
		if f.Mail.APIKey != "" {
			cfg.MailAPIKey = f.Mail.APIKey
		}
		if f.Mail.From != "" {
			cfg.MailFrom = f.Mail.From
		}
		if f.Mail.OpsInbox != "" {
			cfg.MailOpsInbox = f.Mail.OpsInbox
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.AdminToken = envOrDefault("ADMIN_TOKEN", cfg.AdminToken)
	cfg.PartnerTokens = envTokenMap("PARTNER_TOKENS", cfg.PartnerTokens)
	cfg.MailAPIURL = envOrDefault("MAIL_API_URL", cfg.MailAPIURL)
	cfg.MailAPIKey = envOrDefault("MAIL_API_KEY", cfg.MailAPIKey)
	cfg.MailFrom = envOrDefault("MAIL_FROM", cfg.MailFrom)
	cfg.MailOpsInbox = envOrDefault("MAIL_OPS_INBOX", cfg.MailOpsInbox)
	cfg.Currency = envOrDefault("CURRENCY", cfg.Currency)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.SubmitIPThreshold = envInt("SUBMIT_RATE_LIMIT_IP_THRESHOLD", cfg.SubmitIPThreshold)
	cfg.SubmitPhoneThreshold = envInt("SUBMIT_RATE_LIMIT_PHONE_THRESHOLD", cfg.SubmitPhoneThreshold)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.PhoneDedupWindow = time.Duration(envInt("PHONE_DEDUP_WINDOW_SECONDS", int(cfg.PhoneDedupWindow.Seconds()))) * time.Second
	cfg.SubmitRateWindow = time.Duration(envInt("SUBMIT_RATE_LIMIT_WINDOW_SECONDS", int(cfg.SubmitRateWindow.Seconds()))) * time.Second
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.DashboardCacheTTL = time.Duration(envInt("DASHBOARD_CACHE_TTL_SECONDS", int(cfg.DashboardCacheTTL.Seconds()))) * time.Second
	cfg.MailTimeout = time.Duration(envInt("MAIL_TIMEOUT_SECONDS", int(cfg.MailTimeout.Seconds()))) * time.Second
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.OutboxClaimTTL = time.Duration(envInt("OUTBOX_CLAIM_TTL_SECONDS", int(cfg.OutboxClaimTTL.Seconds()))) * time.Second
	cfg.OutboxMaxRetries = envInt("OUTBOX_MAX_RETRIES", cfg.OutboxMaxRetries)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envTokenMap parses "token=name" comma-separated pairs for partner tokens.
func envTokenMap(name string, fallback map[string]string) map[string]string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			continue
		}
		out[pair[0]] = pair[1]
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
