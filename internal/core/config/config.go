package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"repair-tracker/internal/core/validator"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal, also the env var name
// - default: default value to set if missing
// - validate: go-playground/validator rules checked after loading
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080" validate:"min=1,max=65535"`

	// Store holds the order store connection details.
	Store StoreConfig `mapstructure:",squash"`

	// Lookup holds settings for the public lookup endpoints.
	Lookup LookupConfig `mapstructure:",squash"`
}

// StoreConfig holds the credentials for the Supabase REST interface.
type StoreConfig struct {
	// URL is the Supabase project URL, without the /rest/v1 suffix.
	URL string `mapstructure:"SUPABASE_URL" validate:"required,url"`
	// AnonKey is the public API key sent as apikey and bearer token.
	AnonKey string `mapstructure:"SUPABASE_ANON_KEY" validate:"required"`
	// OrdersTable is the table holding repair orders.
	OrdersTable string `mapstructure:"SUPABASE_ORDERS_TABLE" default:"orders" validate:"required"`
	// ProfilesTable is the table holding shop profiles.
	ProfilesTable string `mapstructure:"SUPABASE_PROFILES_TABLE" default:"profiles" validate:"required"`
	// TimeoutSeconds bounds each store call. 0 disables the timeout.
	TimeoutSeconds int `mapstructure:"STORE_TIMEOUT_SECONDS" default:"0" validate:"gte=0"`
}

// Timeout returns TimeoutSeconds as a duration.
func (c StoreConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LookupConfig holds settings for the lookup endpoints.
type LookupConfig struct {
	// RedisURL enables the shared rate limiter, e.g. redis://localhost:6379/0.
	RedisURL string `mapstructure:"REDIS_URL" validate:"omitempty,url"`
	// RateLimitPerMinute caps lookups per client IP. 0 disables limiting.
	RateLimitPerMinute int `mapstructure:"LOOKUP_RATE_LIMIT_PER_MINUTE" default:"30" validate:"gte=0"`
	// PhoneRegion is the ISO region used to parse local phone numbers.
	PhoneRegion string `mapstructure:"PHONE_DEFAULT_REGION" default:"DO" validate:"len=2"`
	// PublicTrackURL is the customer tracking page; %s is replaced by the token.
	PublicTrackURL string `mapstructure:"PUBLIC_TRACK_URL" default:"http://localhost:8080/track?id=%s" validate:"required,contains=%s"`
	// StatusAliases maps extra store labels to canonical ones: "PENDIENTE=Received,LISTO=Ready for pickup".
	StatusAliases string `mapstructure:"STATUS_ALIASES"`
}

// StatusAliasMap parses StatusAliases.
func (c LookupConfig) StatusAliasMap() (map[string]string, error) {
	aliases := make(map[string]string)
	if strings.TrimSpace(c.StatusAliases) == "" {
		return aliases, nil
	}

	for _, pair := range strings.Split(c.StatusAliases, ",") {
		alias, target, ok := strings.Cut(pair, "=")
		alias, target = strings.TrimSpace(alias), strings.TrimSpace(target)
		if !ok || alias == "" || target == "" {
			return nil, fmt.Errorf("invalid STATUS_ALIASES entry: %q", pair)
		}
		aliases[alias] = target
	}

	return aliases, nil
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	processTags(v, reflect.TypeOf(config))

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags binds every tagged field to its env var and registers defaults.
func processTags(v *viper.Viper, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			processTags(v, field.Type)
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		v.BindEnv(key)

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
}

// validate runs the validate tags and reports the first failure by env var name.
func validate(config *AppConfig) error {
	err := validator.NewWithTagName("mapstructure").Struct(config)
	if err == nil {
		return nil
	}

	fieldErrs := validator.FieldErrors(err)
	if len(fieldErrs) == 0 {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return fmt.Errorf("missing required configuration: %s", fe.Field())
	}
	return fmt.Errorf("invalid configuration: %s fails %q", fe.Field(), fe.Tag())
}
