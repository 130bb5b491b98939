// Package config reads the configuration of expensebud from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/expensebud/backend/internal/importer"
	"github.com/expensebud/backend/internal/upstream/plaid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var (
	ErrAPIURLMissing    = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid    = errors.New("environment variable API_URL must be a valid URL")
	ErrJWTSecretMissing = errors.New("environment variable JWT_SECRET_KEY must be set")
)

// Config is the configuration of the backend.
type Config struct {
	APIURL      *url.URL
	DatabaseURL string
	JWTSecret   string
	BcryptCost  int

	Plaid        plaid.Config
	ImportPolicy importer.Policy

	AMQPURL   string // Empty disables publishing budget alerts to the broker
	AMQPQueue string

	RateLimit        rate.Limit // Requests per second for the authentication endpoints
	RateBurst        int
	CORSAllowOrigins []string
	EnablePprof      bool

	GinMode   string
	LogFormat string
	Port      string
}

// LoadDotEnv loads variables from a .env file in the working directory.
// A missing file is not an error, variables already set are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("no .env file found, using environment only")
		return nil
	}

	return err
}

// Load parses the configuration from the environment.
//
// Only malformed values are errors here. Use Validate for the variables
// the API server cannot start without.
func Load() (Config, error) {
	var err error

	c := Config{
		DatabaseURL: lookup("DATABASE_URL", "data/expensebud.db"),
		JWTSecret:   os.Getenv("JWT_SECRET_KEY"),
		Plaid: plaid.Config{
			ClientID:    os.Getenv("PLAID_CLIENT_ID"),
			Secret:      os.Getenv("PLAID_SECRET"),
			Environment: lookup("PLAID_ENV", "sandbox"),
			RedirectURI: os.Getenv("PLAID_REDIRECT_URI"),
			ClientName:  lookup("PLAID_CLIENT_NAME", "expensebud"),
		},
		AMQPURL:          os.Getenv("AMQP_URL"),
		AMQPQueue:        lookup("AMQP_QUEUE", "budget_alerts"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
		GinMode:          lookup("GIN_MODE", "release"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		Port:             lookup("PORT", "8080"),
	}

	if apiURL, ok := os.LookupEnv("API_URL"); ok {
		c.APIURL, err = url.Parse(apiURL)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrAPIURLInvalid, err)
		}
	}

	c.BcryptCost, err = integer("BCRYPT_WORK_FACTOR", 12)
	if err != nil {
		return Config{}, err
	}

	c.ImportPolicy, err = importer.ParsePolicy(os.Getenv("IMPORT_UNMAPPABLE"))
	if err != nil {
		return Config{}, fmt.Errorf("IMPORT_UNMAPPABLE: %w", err)
	}

	perSecond, err := integer("RATE_LIMIT_PER_SECOND", 5)
	if err != nil {
		return Config{}, err
	}
	c.RateLimit = rate.Limit(perSecond)

	c.RateBurst, err = integer("RATE_LIMIT_BURST", 10)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate verifies that everything needed to serve the API is configured.
func (c Config) Validate() error {
	if c.APIURL == nil {
		return ErrAPIURLMissing
	}

	if c.APIURL.Scheme == "" || c.APIURL.Host == "" {
		return ErrAPIURLInvalid
	}

	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}

	return nil
}

// Human reports if logs should be human readable instead of JSON.
//
// If LOG_FORMAT is not set, it defaults to human readable for development
// and JSON for release.
func (c Config) Human() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}

	return c.LogFormat == "human"
}

func lookup(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}

func integer(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil || i < 1 {
		return 0, fmt.Errorf("environment variable %s must be a positive integer, got %q", key, v)
	}

	return i, nil
}
