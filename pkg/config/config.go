package config

import (
	"time"
)

type DB struct {
	URL          string `envconfig:"URL" default:"sqlite://crowdfund.db"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
}

// API configures the remote client of the crowdfunding platform.
type API struct {
	BaseURL           string        `envconfig:"BASE_URL" default:"http://localhost:8000"`
	Timeout           time.Duration `envconfig:"TIMEOUT" default:"15s"`
	RequestsPerSecond float64       `envconfig:"REQUESTS_PER_SECOND" default:"10"`
	Burst             int           `envconfig:"BURST" default:"20"`
}

// Sync configures the background cache-write queue.
type Sync struct {
	Workers         int           `envconfig:"WORKERS" default:"2"`
	QueueSize       int           `envconfig:"QUEUE_SIZE" default:"256"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Session configures where access and refresh tokens are kept.
type Session struct {
	// Store is "memory" or "redis".
	Store string `envconfig:"STORE" default:"memory"`
	// ExpirySkew treats a token as expired this long before its exp claim.
	ExpirySkew time.Duration `envconfig:"EXPIRY_SKEW" default:"30s"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"crowdfund:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

//revive:disable
type Stripe struct {
	// PublishableKey is enough to read a PaymentIntent together with its client secret.
	PublishableKey string `envconfig:"PUBLISHABLE_KEY"`
}

//revive:enable
type PaymentProviders struct {
	Stripe *Stripe `envconfig:"STRIPE"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[crowdfund]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"127.0.0.1"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env              string            `envconfig:"APP_ENV" default:"development"`
	Server           *Server           `envconfig:"SERVER"`
	Log              *Log              `envconfig:"LOG"`
	DB               *DB               `envconfig:"DATABASE"`
	API              *API              `envconfig:"API"`
	Sync             *Sync             `envconfig:"SYNC"`
	Session          *Session          `envconfig:"SESSION"`
	Redis            *Redis            `envconfig:"REDIS"`
	RateLimit        *RateLimit        `envconfig:"RATE_LIMIT"`
	PaymentProviders *PaymentProviders `envconfig:"PAYMENT_PROVIDER"`
}
