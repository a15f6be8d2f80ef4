package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendVendor   = "vendor"
	BackendPostgres = "postgres"

	FilterExact      = "exact"
	FilterExpression = "expression"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Upstream   Upstream   `yaml:"upstream"`
	Database   Database   `yaml:"database"`
	Widget     Widget     `yaml:"widget"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

// Upstream configures the events service the adapters proxy to.
type Upstream struct {
	// Backend selects the implementation: "vendor" (managed REST API) or "postgres" (local stand-in).
	Backend string `yaml:"backend" env:"UPSTREAM_BACKEND" env-default:"vendor"`

	BaseURL      string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-default:"https://www.wixapis.com"`
	APIKey       string        `yaml:"api_key" env:"UPSTREAM_API_KEY"`
	SiteID       string        `yaml:"site_id" env:"UPSTREAM_SITE_ID"`
	SiteIDHeader string        `yaml:"site_id_header" env-default:"wix-site-id"`
	Timeout      time.Duration `yaml:"timeout" env-default:"10s"`

	// MaxRetries applies to idempotent queries only.
	MaxRetries   uint64        `yaml:"max_retries" env-default:"2"`
	RetryBackoff time.Duration `yaml:"retry_backoff" env-default:"200ms"`

	PageSize int `yaml:"page_size" env-default:"50"`
	MaxPages int `yaml:"max_pages" env-default:"10"`

	FilterForm   string   `yaml:"filter_form" env:"UPSTREAM_FILTER_FORM" env-default:"expression"`
	EventFields  []string `yaml:"event_fields" env-default:"events,items"`
	TicketFields []string `yaml:"ticket_fields" env-default:"ticketDefinitions,definitions"`

	Paths Paths `yaml:"paths"`
}

type Paths struct {
	Events            string `yaml:"events" env-default:"/events/v1/events/query"`
	TicketDefinitions string `yaml:"ticket_definitions" env-default:"/events/v1/ticket-definitions/query"`
	Reservations      string `yaml:"reservations" env-default:"/events/v1/events/{eventId}/reservations"`
	Rsvp              string `yaml:"rsvp" env-default:"/events/v1/rsvp"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"events"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`

	ReservationHold time.Duration `yaml:"reservation_hold" env-default:"20m"`
	ExpireInterval  time.Duration `yaml:"expire_interval" env-default:"1m"`
}

type Widget struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"WIDGET_ALLOWED_ORIGINS" env-default:"*"`
	EventPagePath  string   `yaml:"event_page_path" env-default:"/event-details"`
	StaticDir      string   `yaml:"static_dir" env:"WIDGET_STATIC_DIR"`
}

// MustLoad reads the config file named by --config or CONFIG_PATH and exits on failure.
func MustLoad() *Config {
	// .env is optional
	_ = godotenv.Load()

	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("config path is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Upstream.Backend {
	case BackendVendor, BackendPostgres:
	default:
		return fmt.Errorf("unknown upstream backend %q", c.Upstream.Backend)
	}

	switch c.Upstream.FilterForm {
	case FilterExact, FilterExpression:
	default:
		return fmt.Errorf("unknown filter form %q", c.Upstream.FilterForm)
	}

	if c.Upstream.PageSize <= 0 {
		return errors.New("upstream page_size must be positive")
	}
	if c.Upstream.MaxPages <= 0 {
		return errors.New("upstream max_pages must be positive")
	}

	return nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
