package internal

import (
	"fmt"
	"strings"
	"time"
)

const (
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	JWTIssuer         string        `env:"JWT_ISSUER,default=chat-live"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	StoreDriver     string        `env:"STORE_DRIVER,default=badger"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,default=./data/badger"`
	PostgresDSN     string        `env:"POSTGRES_DSN"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	LimitMessages   *int          `env:"LIMIT_MESSAGES"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT,default=5s"`
	ConnectAttempts int           `env:"CONNECT_ATTEMPTS,default=5"`

	AllowedOrigins   string        `env:"ALLOWED_ORIGINS,default=*"`
	MaxFrameSize     int64         `env:"MAX_FRAME_SIZE,default=65536"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,default=4000"`
	SendBufferSize   int           `env:"SEND_BUFFER_SIZE,default=256"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	PongTimeout      time.Duration `env:"PONG_TIMEOUT,default=60s"`
	PingInterval     time.Duration `env:"PING_INTERVAL,default=54s"`
	RegistryShards   int           `env:"REGISTRY_SHARDS,default=32"`
	PresenceBuffer   int           `env:"PRESENCE_BUFFER,default=1024"`

	CensoredWordsFile string `env:"CENSORED_WORDS_FILE"`
	CensorReplacement string `env:"CENSOR_REPLACEMENT,default=*"`

	TypingTTL           time.Duration `env:"TYPING_TTL,default=5s"`
	TypingSweepInterval time.Duration `env:"TYPING_SWEEP_INTERVAL,default=1s"`
	MetricInterval      time.Duration `env:"METRIC_INTERVAL,default=15s"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Validate checks what the env tags cannot express.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverBadger:
		if c.BadgerFilepath == "" {
			return fmt.Errorf("BADGER_FILEPATH is required with STORE_DRIVER=%s", DriverBadger)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required with STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverBadger, DriverPostgres, c.StoreDriver)
	}
	if c.PingInterval >= c.PongTimeout {
		return fmt.Errorf("PING_INTERVAL (%s) must be shorter than PONG_TIMEOUT (%s)", c.PingInterval, c.PongTimeout)
	}
	if c.SendBufferSize <= 0 {
		return fmt.Errorf("SEND_BUFFER_SIZE must be positive, got %d", c.SendBufferSize)
	}
	// Ticker based workers panic on a zero period
	for name, interval := range map[string]time.Duration{
		"TYPING_SWEEP_INTERVAL": c.TypingSweepInterval,
		"METRIC_INTERVAL":       c.MetricInterval,
		"PING_INTERVAL":         c.PingInterval,
		"TYPING_TTL":            c.TypingTTL,
	} {
		if interval <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, interval)
		}
	}
	return nil
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	origins := strings.Split(c.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// Replacement is the rune masking censored words.
func (c Config) Replacement() rune {
	for _, r := range c.CensorReplacement {
		return r
	}
	return '*'
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
