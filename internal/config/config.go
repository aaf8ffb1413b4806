package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	Etherscan EtherscanConfig `mapstructure:"etherscan"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Registry  RegistryConfig  `mapstructure:"registry"`
	DB        DBConfig        `mapstructure:"db"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level              string   `mapstructure:"level"`
	Encoding           string   `mapstructure:"encoding"`
	Development        bool     `mapstructure:"development"`
	Sampling           bool     `mapstructure:"sampling"`
	SamplingInitial    int      `mapstructure:"sampling_initial"`
	SamplingThereafter int      `mapstructure:"sampling_thereafter"`
	DisableCaller      bool     `mapstructure:"disable_caller"`
	DisableStacktrace  bool     `mapstructure:"disable_stacktrace"`
	OutputPaths        []string `mapstructure:"output_paths"`
	Service            string   `mapstructure:"service"`
}

// UpstreamConfig points at the trade/coordinator API and the order book host.
type UpstreamConfig struct {
	RookBaseURL       string        `mapstructure:"rook_base_url"`
	HidingBookBaseURL string        `mapstructure:"hiding_book_base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	HistoryPageSize   int           `mapstructure:"history_page_size"`
	MaxHistoryPages   int           `mapstructure:"max_history_pages"`
}

type BreakerConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	MaxRequests         uint32        `mapstructure:"max_requests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures"`
}

type EtherscanConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Rate    float64       `mapstructure:"rate"`
	Burst   int           `mapstructure:"burst"`
}

type CacheConfig struct {
	Backend string         `mapstructure:"backend"`
	Redis   RedisConfig    `mapstructure:"redis"`
	TTL     CacheTTLConfig `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type CacheTTLConfig struct {
	Tokens       time.Duration `mapstructure:"tokens"`
	Registry     time.Duration `mapstructure:"registry"`
	OpenOrders   time.Duration `mapstructure:"open_orders"`
	History      time.Duration `mapstructure:"history"`
	Fills        time.Duration `mapstructure:"fills"`
	Auctions     time.Duration `mapstructure:"auctions"`
	PriceHistory time.Duration `mapstructure:"price_history"`
	Balances     time.Duration `mapstructure:"balances"`
}

type RegistryConfig struct {
	FallbackName string          `mapstructure:"fallback_name"`
	Manual       []ManualAddress `mapstructure:"manual"`
}

// ManualAddress is a hand-curated registry entry. Type defaults to User.
type ManualAddress struct {
	Address string `mapstructure:"address"`
	Name    string `mapstructure:"name"`
	Type    string `mapstructure:"type"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

func Load(path string, envOnly bool) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("HB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	setDefaults(v)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.sampling_initial", 100)
	v.SetDefault("log.sampling_thereafter", 100)
	v.SetDefault("log.output_paths", []string{"stdout"})
	v.SetDefault("log.service", "hidingbook-viewer")
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)

	v.SetDefault("upstream.rook_base_url", "https://api.rook.fi/api/v1")
	v.SetDefault("upstream.hiding_book_base_url", "https://hidingbook.keeperdao.com/api/v1")
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("upstream.history_page_size", 100)
	v.SetDefault("upstream.max_history_pages", 50)

	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.consecutive_failures", 5)

	v.SetDefault("etherscan.base_url", "https://api.etherscan.io")
	v.SetDefault("etherscan.api_key", "")
	v.SetDefault("etherscan.timeout", "10s")
	v.SetDefault("etherscan.rate", 5)
	v.SetDefault("etherscan.burst", 1)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis.addr", "127.0.0.1:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "hidingbook:")
	v.SetDefault("cache.ttl.tokens", "24h")
	v.SetDefault("cache.ttl.registry", "1h")
	v.SetDefault("cache.ttl.open_orders", "1m")
	v.SetDefault("cache.ttl.history", "10m")
	v.SetDefault("cache.ttl.fills", "5m")
	v.SetDefault("cache.ttl.auctions", "5m")
	v.SetDefault("cache.ttl.price_history", "15m")
	v.SetDefault("cache.ttl.balances", "1m")

	v.SetDefault("registry.fallback_name", "Unknown")

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")

	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.cron", "@every 15m")
}
