package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikolayk812/vibe-vault/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

const envPrefix = "VIBEVAULT_"

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Pricing PricingConfig `yaml:"pricing"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects where the cart is persisted. Path is a directory
// for the file backend and a database file for sqlite; DSN is for postgres.
type StorageConfig struct {
	Backend Backend `yaml:"backend"`
	Path    string  `yaml:"path"`
	DSN     string  `yaml:"dsn"`
}

type PricingConfig struct {
	Currency              string `yaml:"currency"`
	TaxRate               string `yaml:"tax_rate"`
	FreeShippingThreshold string `yaml:"free_shipping_threshold"`
	FlatShippingFee       string `yaml:"flat_shipping_fee"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    defaultDataDir(),
		},
		Pricing: PricingConfig{
			Currency:              "USD",
			TaxRate:               "0.08",
			FreeShippingThreshold: "50",
			FlatShippingFee:       "10",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads path on top of the defaults and then applies VIBEVAULT_*
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		}

		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
			}
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"STORAGE_PATH":                    &c.Storage.Path,
		"STORAGE_DSN":                     &c.Storage.DSN,
		"PRICING_CURRENCY":                &c.Pricing.Currency,
		"PRICING_TAX_RATE":                &c.Pricing.TaxRate,
		"PRICING_FREE_SHIPPING_THRESHOLD": &c.Pricing.FreeShippingThreshold,
		"PRICING_FLAT_SHIPPING_FEE":       &c.Pricing.FlatShippingFee,
		"LOG_LEVEL":                       &c.Logging.Level,
		"LOG_FORMAT":                      &c.Logging.Format,
	}

	for name, field := range overrides {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*field = v
		}
	}

	if v, ok := lookup(envPrefix + "STORAGE_BACKEND"); ok && v != "" {
		c.Storage.Backend = Backend(strings.ToLower(v))
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, fmt.Errorf("storage.path is empty for backend[%s]", c.Storage.Backend))
		}
	case BackendPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, fmt.Errorf("storage.dsn is empty for backend[%s]", c.Storage.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend[%s] is not supported", c.Storage.Backend))
	}

	if _, err := c.PricingRules(); err != nil {
		errs = append(errs, err)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format[%s] is not supported", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// PricingRules parses the pricing section into domain rules.
func (c *Config) PricingRules() (domain.PricingRules, error) {
	cur, err := currency.ParseISO(c.Pricing.Currency)
	if err != nil {
		return domain.PricingRules{}, fmt.Errorf("pricing.currency[%s] is not valid: %w", c.Pricing.Currency, err)
	}

	taxRate, err := nonNegative("pricing.tax_rate", c.Pricing.TaxRate)
	if err != nil {
		return domain.PricingRules{}, err
	}

	threshold, err := nonNegative("pricing.free_shipping_threshold", c.Pricing.FreeShippingThreshold)
	if err != nil {
		return domain.PricingRules{}, err
	}

	fee, err := nonNegative("pricing.flat_shipping_fee", c.Pricing.FlatShippingFee)
	if err != nil {
		return domain.PricingRules{}, err
	}

	return domain.PricingRules{
		Currency:              cur,
		TaxRate:               taxRate,
		FreeShippingThreshold: threshold,
		FlatShippingFee:       fee,
	}, nil
}

func nonNegative(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s[%s] is not a number: %w", field, value, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s[%s] is negative", field, value)
	}
	return d, nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".vibevault"
	}
	return filepath.Join(dir, "vibevault")
}
