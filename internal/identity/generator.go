package identity

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/zarlcorp/zsignup/internal/random"
)

// defaults for the recognized options
const (
	DefaultPasswordLen = 12
	DefaultMinYear     = 1970
	DefaultMaxYear     = 2004
)

var (
	// ErrInvalidEmail is returned when an email fails the syntax check.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrUnknownCountry is returned for a country outside the supported list.
	ErrUnknownCountry = errors.New("unknown country")
)

// Config holds the generation options.
type Config struct {
	PasswordLength int
	MinYear        int
	MaxYear        int
	DefaultCountry string
}

// DefaultConfig returns the stock options.
func DefaultConfig() Config {
	return Config{
		PasswordLength: DefaultPasswordLen,
		MinYear:        DefaultMinYear,
		MaxYear:        DefaultMaxYear,
		DefaultCountry: DefaultCountry,
	}
}

// Generator produces signup details. It keeps no state between calls and
// is safe for concurrent use as long as its Source is.
type Generator struct {
	cfg Config
	src random.Source
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the crypto-backed source.
func WithSource(src random.Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithClock replaces time.Now for the record timestamp.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator for cfg.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if cfg.MinYear > cfg.MaxYear {
		return nil, fmt.Errorf("identity: year range %d-%d: %w", cfg.MinYear, cfg.MaxYear, random.ErrInvalidArgument)
	}
	if cfg.DefaultCountry == "" {
		cfg.DefaultCountry = DefaultCountry
	}
	if !slices.Contains(countries, cfg.DefaultCountry) {
		return nil, fmt.Errorf("identity: default %q: %w", cfg.DefaultCountry, ErrUnknownCountry)
	}

	g := &Generator{cfg: cfg, src: random.Crypto{}, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the options the generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

// Account builds a complete record for the given email and country.
// An empty country selects the configured default.
func (g *Generator) Account(email, country string) (Record, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return Record{}, ErrInvalidEmail
	}

	if country == "" {
		country = g.cfg.DefaultCountry
	}
	if !slices.Contains(countries, country) {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}

	first, last := g.Name()
	dob, err := g.DateOfBirth(g.cfg.MinYear, g.cfg.MaxYear)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Email:       email,
		FirstName:   first,
		LastName:    last,
		DisplayName: g.DisplayName(first, last),
		DateOfBirth: dob,
		Password:    g.Password(g.cfg.PasswordLength),
		Country:     country,
		CreatedAt:   g.now().Truncate(time.Second),
	}, nil
}

// Name generates a random first/last name pair.
func (g *Generator) Name() (first, last string) {
	return g.pick(firstNames), g.pick(lastNames)
}

// pick returns a random element of a fixed, non-empty list.
func (g *Generator) pick(s []string) string {
	v, err := random.Choose(g.src, s)
	if err != nil {
		// the built-in lists are never empty
		panic("identity: " + err.Error())
	}
	return v
}

// pickByte returns a random byte from a string.
func (g *Generator) pickByte(s string) byte {
	return s[g.src.Intn(len(s))]
}
