package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"statement-engine/internal/core"
)

// Config is the process configuration, read from the environment (mains
// load a .env first via godotenv).
type Config struct {
	DatabaseURL string
	CatalogPath string
	CountryCode string
	Standard    string
	// StrictAggregation controls whether ledger failures abort statement
	// generation. The lenient mode exists only for compatibility with the
	// legacy zero-on-error behavior.
	StrictAggregation bool
}

// FromEnv builds a Config from environment variables, applying defaults for
// the reporting context.
func FromEnv() *Config {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		CatalogPath:       os.Getenv("CATALOG_PATH"),
		CountryCode:       os.Getenv("COUNTRY_CODE"),
		Standard:          os.Getenv("ACCOUNTING_STANDARD"),
		StrictAggregation: os.Getenv("STRICT_AGGREGATION") != "false",
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = core.DefaultCountryCode
	}
	if cfg.Standard == "" {
		cfg.Standard = core.DefaultStandard
	}
	return cfg
}

// Catalog is the YAML representation of a line-mapping catalog. It is
// loaded once at process start and handed to the registry; the engine never
// reloads it.
type Catalog struct {
	Mappings []CatalogMapping `yaml:"mappings"`
}

// CatalogMapping mirrors core.LineMapping for file storage. Active defaults
// to true when omitted.
type CatalogMapping struct {
	CountryCode     string   `yaml:"country_code"`
	Standard        string   `yaml:"standard"`
	System          string   `yaml:"system"`
	Statement       string   `yaml:"statement"`
	LineCode        string   `yaml:"line_code"`
	Label           string   `yaml:"label"`
	AccountPatterns []string `yaml:"account_patterns"`
	NormalSign      string   `yaml:"normal_sign"`
	DisplayOrder    int      `yaml:"display_order"`
	Level           int      `yaml:"level"`
	IsTotal         bool     `yaml:"is_total,omitempty"`
	Active          *bool    `yaml:"active,omitempty"`
}

// LoadCatalog reads a catalog file and converts it to line mappings.
func LoadCatalog(path string) ([]core.LineMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	mappings := make([]core.LineMapping, 0, len(cat.Mappings))
	for i, cm := range cat.Mappings {
		if cm.LineCode == "" {
			return nil, fmt.Errorf("catalog mapping %d: line_code is required", i)
		}
		if len(cm.AccountPatterns) == 0 {
			return nil, fmt.Errorf("catalog mapping %s: account_patterns must not be empty", cm.LineCode)
		}
		active := true
		if cm.Active != nil {
			active = *cm.Active
		}
		mappings = append(mappings, core.LineMapping{
			CountryCode:     cm.CountryCode,
			Standard:        cm.Standard,
			System:          core.SystemVariant(cm.System),
			Statement:       core.StatementType(cm.Statement),
			LineCode:        cm.LineCode,
			Label:           cm.Label,
			AccountPatterns: cm.AccountPatterns,
			NormalSign:      core.NormalSign(cm.NormalSign),
			DisplayOrder:    cm.DisplayOrder,
			Level:           cm.Level,
			IsTotal:         cm.IsTotal,
			Active:          active,
		})
	}
	return mappings, nil
}

// SaveCatalog writes line mappings to a catalog file.
func SaveCatalog(path string, mappings []core.LineMapping) error {
	cat := Catalog{Mappings: make([]CatalogMapping, 0, len(mappings))}
	for _, m := range mappings {
		active := m.Active
		cat.Mappings = append(cat.Mappings, CatalogMapping{
			CountryCode:     m.CountryCode,
			Standard:        m.Standard,
			System:          string(m.System),
			Statement:       string(m.Statement),
			LineCode:        m.LineCode,
			Label:           m.Label,
			AccountPatterns: m.AccountPatterns,
			NormalSign:      string(m.NormalSign),
			DisplayOrder:    m.DisplayOrder,
			Level:           m.Level,
			IsTotal:         m.IsTotal,
			Active:          &active,
		})
	}

	data, err := yaml.Marshal(&cat)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
