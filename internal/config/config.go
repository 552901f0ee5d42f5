// Package config loads cotizador settings from an optional YAML file and
// COTIZADOR_* environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/cotizador/internal/db"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the CLI needs to open a workspace.
type Config struct {
	// DBPath is the SQLite file holding proposals, local services and chats.
	DBPath string `yaml:"db_path" validate:"required"`

	// Catalog is a file path or http(s) URL of the catalog document.
	Catalog string `yaml:"catalog" validate:"required"`

	// PointPrice is the price of one extra plan point.
	PointPrice float64 `yaml:"point_price" validate:"gte=0"`

	// DefaultMargin is the margin fraction applied to new drafts (0.5 = 50%).
	DefaultMargin float64 `yaml:"default_margin" validate:"gte=0"`

	// DefaultMode is the sale mode new drafts start in.
	DefaultMode string `yaml:"default_mode" validate:"oneof=puntual mensual"`

	// Currency is the ISO 4217 code catalog prices are expressed in.
	Currency string `yaml:"currency" validate:"required,len=3,alpha"`

	// DisplayCurrency and ExchangeRate convert totals for display. Both are
	// optional; a rate is required once a display currency is set.
	DisplayCurrency string  `yaml:"display_currency" validate:"omitempty,len=3,alpha"`
	ExchangeRate    float64 `yaml:"exchange_rate" validate:"required_with=DisplayCurrency,gte=0"`

	// Locale is the BCP 47 tag used to format amounts.
	Locale string `yaml:"locale" validate:"required"`

	// Log enables structured use-case logging on stderr.
	Log bool `yaml:"log"`
}

var validate = validator.New()

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:        db.DefaultPath(),
		Catalog:       filepath.Join(filepath.Dir(db.DefaultPath()), "catalog.json"),
		PointPrice:    10,
		DefaultMargin: 0.5,
		DefaultMode:   "puntual",
		Currency:      "EUR",
		Locale:        "es-ES",
	}
}

// DefaultPath returns the config file location: COTIZADOR_CONFIG when set,
// otherwise ~/.cotizador/config.yaml.
func DefaultPath() string {
	if v := os.Getenv("COTIZADOR_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(filepath.Dir(db.DefaultPath()), "config.yaml")
}

// Load reads the config file (missing is fine unless COTIZADOR_CONFIG names
// it), applies environment overrides and validates the result.
func Load() (Config, error) {
	cfg := Default()

	path := DefaultPath()
	if err := cfg.mergeFile(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || os.Getenv("COTIZADOR_CONFIG") != "" {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("COTIZADOR_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("COTIZADOR_CATALOG"); v != "" {
		c.Catalog = v
	}
	if v := os.Getenv("COTIZADOR_POINT_PRICE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("COTIZADOR_POINT_PRICE: %w", err)
		}
		c.PointPrice = f
	}
	if v := os.Getenv("COTIZADOR_DEFAULT_MARGIN"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("COTIZADOR_DEFAULT_MARGIN: %w", err)
		}
		c.DefaultMargin = f
	}
	if v := os.Getenv("COTIZADOR_MODE"); v != "" {
		c.DefaultMode = v
	}
	if v := os.Getenv("COTIZADOR_CURRENCY"); v != "" {
		c.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("COTIZADOR_DISPLAY_CURRENCY"); v != "" {
		c.DisplayCurrency = strings.ToUpper(v)
	}
	if v := os.Getenv("COTIZADOR_EXCHANGE_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("COTIZADOR_EXCHANGE_RATE: %w", err)
		}
		c.ExchangeRate = f
	}
	if v := os.Getenv("COTIZADOR_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("COTIZADOR_LOG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COTIZADOR_LOG: %w", err)
		}
		c.Log = b
	}
	return nil
}

// Validate checks the struct tags and reports every failing field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Write saves cfg as YAML at path, creating the directory when needed.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
