package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (schedule, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Restaurant RestaurantConfig
	Payment    PaymentConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Manila"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Manila"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"28800"` // 8*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// RestaurantConfig describes the fixed daily booking schedule. Timeslots are
// derived from StartTimes in the restaurant's local timezone; they are not
// stored entities.
type RestaurantConfig struct {
	TimeZone       string        `envconfig:"RESTAURANT_TIMEZONE" default:"Asia/Manila"`
	StartTimes     []string      `envconfig:"RESTAURANT_START_TIMES" default:"10:00,11:15,13:30,14:45,16:00,17:15,18:30,20:45"`
	SlotDuration   time.Duration `envconfig:"RESTAURANT_SLOT_DURATION" default:"1h"`
	ClosedWeekdays []string      `envconfig:"RESTAURANT_CLOSED_WEEKDAYS" default:""`

	// Whether an already-paid reservation may still be cancelled
	// (non-refundable fee policy is surfaced by the UI, not enforced here).
	AllowFulfilledCancel bool `envconfig:"RESERVATION_ALLOW_FULFILLED_CANCEL" default:"false"`
}

type PaymentConfig struct {
	BaseURL           string        `envconfig:"PAYMENT_BASE_URL" default:"https://api.paymongo.com/v1"`
	SecretKey         string        `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	MinAmountCentavos int64         `envconfig:"PAYMENT_MIN_AMOUNT_CENTAVOS" default:"2000"`
	RequestTimeout    time.Duration `envconfig:"PAYMENT_REQUEST_TIMEOUT" default:"10s"`
	ReturnURL         string        `envconfig:"PAYMENT_RETURN_URL" default:"http://localhost:3000/reservations/return"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Manila",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Manila",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 28800,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Restaurant: RestaurantConfig{
			TimeZone:     "Asia/Manila",
			StartTimes:   []string{"10:00", "11:15", "13:30", "14:45", "16:00", "17:15", "18:30", "20:45"},
			SlotDuration: time.Hour,
		},
		Payment: PaymentConfig{
			BaseURL:           "http://localhost:9999",
			SecretKey:         "sk_test",
			MinAmountCentavos: 2000,
			RequestTimeout:    2 * time.Second,
			ReturnURL:         "http://localhost:3000/reservations/return",
		},
	}
}
