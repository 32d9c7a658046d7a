package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var cfg *Config
var once sync.Once

// Config is the configuration for the application
type Config struct {
	Server
	SMTP
	Receipt
	Backend
	PostgreSQL
	Retention
	Log
}

// Server is the configuration for the server
type Server struct {
	Port           string `env:"PORT" envDefault:"8080"`
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// Addr returns the address for the server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%s", "0.0.0.0", s.Port)
}

// Origins splits the comma separated CORS origin list.
func (s Server) Origins() []string {
	return splitList(s.AllowedOrigins)
}

// SMTP holds the mail submission identity. Username doubles as the sender address.
type SMTP struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME" envDefault:""`
	Password string `env:"SMTP_PASSWORD" envDefault:""`
	FromName string `env:"SMTP_FROM_NAME" envDefault:"EasyPay"`
	Timeout  string `env:"SMTP_TIMEOUT" envDefault:"15s"`
}

// PortNumber returns the SMTP port, 587 when unparsable.
func (s SMTP) PortNumber() int {
	p, err := strconv.Atoi(s.Port)
	if err != nil || p <= 0 {
		return 587
	}
	return p
}

// DialTimeout returns the SMTP timeout, 15s when unparsable.
func (s SMTP) DialTimeout() time.Duration {
	return parseDuration(s.Timeout, 15*time.Second)
}

// Receipt configures receipt rendering and delivery.
type Receipt struct {
	Brand        string `env:"RECEIPT_BRAND" envDefault:"EasyPay"`
	SupportEmail string `env:"RECEIPT_SUPPORT_EMAIL" envDefault:"support@easypay.com"`
	TimeZone     string `env:"RECEIPT_TIMEZONE" envDefault:"Africa/Lagos"`
	SendTimeout  string `env:"RECEIPT_SEND_TIMEOUT" envDefault:"30s"`
}

// Location resolves the rendering time zone, UTC when unknown.
func (r Receipt) Location() *time.Location {
	loc, err := time.LoadLocation(r.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Timeout bounds a single render and dispatch.
func (r Receipt) Timeout() time.Duration {
	return parseDuration(r.SendTimeout, 30*time.Second)
}

// Backend is the EasyPay REST API the dashboard talks to.
type Backend struct {
	URL     string `env:"BACKEND_API_URL" envDefault:"http://localhost:5050/api/v1"`
	Timeout string `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// RequestTimeout returns the per request timeout, 10s when unparsable.
func (b Backend) RequestTimeout() time.Duration {
	return parseDuration(b.Timeout, 10*time.Second)
}

// PostgreSQL is the configuration for the dispatch log database
type PostgreSQL struct {
	Enabled         string `env:"DB_ENABLED" envDefault:"false"`
	Driver          string `env:"DB_DRIVER" envDefault:"postgres"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	Database        string `env:"DB_DATABASE" envDefault:"easypay_receipts"`
	Username        string `env:"DB_USERNAME" envDefault:"easypay_receipts"`
	Password        string `env:"DB_PASSWORD" envDefault:"easypay_receipts"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConnAttempts string `env:"DB_MAX_CONN_ATTEMPTS" envDefault:"5"`
}

// IsEnabled reports whether dispatches are recorded in PostgreSQL.
func (c PostgreSQL) IsEnabled() bool {
	enabled, _ := strconv.ParseBool(c.Enabled)
	return enabled
}

// DSN returns the DSN for the database
func (c PostgreSQL) DSN() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s/%s?sslmode=%s",
		c.Driver,
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// Retention controls how long dispatch log rows are kept.
type Retention struct {
	MaxAge   string `env:"DISPATCH_RETENTION" envDefault:"2160h"`
	Interval string `env:"DISPATCH_PURGE_INTERVAL" envDefault:"1h"`
}

// Window returns the retention age, 90 days when unparsable.
func (r Retention) Window() time.Duration {
	return parseDuration(r.MaxAge, 90*24*time.Hour)
}

// Every returns the purge interval, one hour when unparsable.
func (r Retention) Every() time.Duration {
	return parseDuration(r.Interval, time.Hour)
}

// Log configures pkg/log.
type Log struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	File    string `env:"LOG_FILE" envDefault:""`
	Console string `env:"LOG_CONSOLE" envDefault:"true"`
}

// ConsoleEnabled reports whether human readable console output is wanted.
func (l Log) ConsoleEnabled() bool {
	enabled, err := strconv.ParseBool(l.Console)
	return err == nil && enabled
}

// Load loads the configuration from a .env file, if any, and environment variables
func Load() *Config {
	once.Do(func() {
		// a missing .env is normal outside local development
		_ = godotenv.Load()
		cfg = parse()
	})

	return cfg
}

// parse fills every string field of every section from its env tag.
func parse() *Config {
	c := &Config{}
	cfgType := reflect.TypeOf(*c)
	cfgValue := reflect.ValueOf(c).Elem()

	for i := 0; i < cfgType.NumField(); i++ {
		field := cfgType.Field(i)
		fieldValue := cfgValue.Field(i)
		for j := 0; j < field.Type.NumField(); j++ {
			subField := field.Type.Field(j)
			envVar := subField.Tag.Get("env")
			if envVar == "" || subField.Type.Kind() != reflect.String {
				continue
			}
			fieldValue.Field(j).SetString(getEnv(envVar, subField.Tag.Get("envDefault")))
		}
	}

	return c
}

// getEnv retrieves the value of the environment variable named by the key or returns the defaultValue if not set
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
	}
	return value
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
