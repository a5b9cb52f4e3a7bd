// Package config loads zsignup settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/zarlcorp/zsignup/internal/accountlog"
	"github.com/zarlcorp/zsignup/internal/identity"
)

// Prefix namespaces every environment variable.
const Prefix = "ZSIGNUP_"

// Config holds every recognized option.
type Config struct {
	PasswordLength int    `env:"PASSWORD_LENGTH" envDefault:"12"`
	DOBMinYear     int    `env:"DOB_MIN_YEAR" envDefault:"1970" validate:"gte=1900,lte=9999"`
	DOBMaxYear     int    `env:"DOB_MAX_YEAR" envDefault:"2004" validate:"gtefield=DOBMinYear,lte=9999"`
	DefaultCountry string `env:"DEFAULT_COUNTRY" envDefault:"United States" validate:"required,country"`
	LogFile        string `env:"LOG_FILE"`
	TempMailURL    string `env:"TEMP_MAIL_URL" envDefault:"https://temp-mail.org/" validate:"required,url"`
	SignupURL      string `env:"SIGNUP_URL" envDefault:"https://www.epicgames.com/id/register" validate:"required,url"`
	NoBrowser      bool   `env:"NO_BROWSER" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
}

// LoadDotEnv loads variables from the given .env files, or ./.env when
// none are given. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", f, err)
		}
	}
	if len(present) == 0 {
		return nil
	}

	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from environ instead of the process
// environment. Keys include the ZSIGNUP_ prefix.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("country", validCountry); err != nil {
		return fmt.Errorf("register country validation: %w", err)
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func validCountry(fl validator.FieldLevel) bool {
	return slices.Contains(identity.Countries(), fl.Field().String())
}

// Identity returns the generation options.
func (c *Config) Identity() identity.Config {
	return identity.Config{
		PasswordLength: c.PasswordLength,
		MinYear:        c.DOBMinYear,
		MaxYear:        c.DOBMaxYear,
		DefaultCountry: c.DefaultCountry,
	}
}

// LogPath returns the account log location: LogFile when set, otherwise
// the default file inside DataDir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(DataDir(), accountlog.DefaultName)
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// DataDir returns the default data directory for zsignup.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zsignup"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zsignup"
	}
	return home + "/.local/share/zsignup"
}
