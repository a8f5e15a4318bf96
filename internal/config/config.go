package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	BotToken        string        `envconfig:"BOT_TOKEN" validate:"required"`
	OwnerID         int64         `envconfig:"OWNER_ID" validate:"required"`
	ReviewChannelID int64         `envconfig:"REVIEW_CHANNEL_ID" validate:"required"`
	PublicChannelID int64         `envconfig:"PUBLIC_CHANNEL_ID" validate:"required"`
	LogChannelID    int64         `envconfig:"LOG_CHANNEL_ID"`
	MaxPostsPerDay  int           `envconfig:"MAX_POSTS_PER_DAY" default:"5" validate:"min=1"`
	Timezone        string        `envconfig:"TIMEZONE" default:"Europe/Moscow" validate:"required"`
	BroadcastDelay  time.Duration `envconfig:"BROADCAST_DELAY" default:"50ms" validate:"min=0"`
	QueueEntryTTL   time.Duration `envconfig:"QUEUE_ENTRY_TTL" default:"720h" validate:"min=0"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	Database        DatabaseConfig

	// Location is Timezone resolved by Load
	Location *time.Location `ignored:"true" validate:"-"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"postgres" validate:"oneof=postgres sqlite"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"predlozhka"`
	User     string `envconfig:"DB_USER" default:"predlozhka"`
	Password string `envconfig:"DB_PASSWORD" validate:"required_if=Driver postgres"`
	Path     string `envconfig:"DB_PATH" default:"bot_data.db" validate:"required_if=Driver sqlite"`
}

var validate = newValidator()

// newValidator reports fields by their environment variable names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("envconfig"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, describe(err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q is invalid: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return &cfg, nil
}

// describe turns validation errors into one readable error
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// DSN returns the connection string for the configured driver
func (c *Config) DSN() string {
	if c.Database.Driver == "sqlite" {
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_time_format=sqlite", c.Database.Path)
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}
