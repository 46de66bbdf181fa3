// Package config loads the optional balanco.yaml import profile: a
// manual column layout for files auto-detection cannot handle, and
// user-confirmed mapping overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/balanco-dev/balanco/internal/model"
)

// Config represents the top-level balanco.yaml configuration.
type Config struct {
	Company  string            `yaml:"company,omitempty"`
	Sheet    string            `yaml:"sheet,omitempty"`
	Columns  *ColumnsConfig    `yaml:"columns,omitempty"`
	Mappings []MappingOverride `yaml:"mappings,omitempty"`
}

// ColumnsConfig is a manual column layout. Indices are zero-based;
// omitted columns are treated as not present in the file.
type ColumnsConfig struct {
	Date            *int `yaml:"date,omitempty"`
	Description     *int `yaml:"description,omitempty"`
	Debit           *int `yaml:"debit,omitempty"`
	Credit          *int `yaml:"credit,omitempty"`
	Balance         *int `yaml:"balance,omitempty"`
	PreviousBalance *int `yaml:"previous_balance,omitempty"`
}

// MappingOverride pins one account code to a statement line.
type MappingOverride struct {
	Code      string `yaml:"code"`
	Statement string `yaml:"statement"`
	Field     string `yaml:"field"`
	Sign      int    `yaml:"sign,omitempty"`
}

// Load reads a balanco.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ColumnConfig converts the manual layout to the engine's ColumnConfig.
// Returns false when no layout is configured.
func (c *Config) ColumnConfig() (model.ColumnConfig, bool) {
	if c.Columns == nil {
		return model.EmptyColumnConfig(), false
	}
	cfg := model.EmptyColumnConfig()
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.Date, c.Columns.Date)
	set(&cfg.Description, c.Columns.Description)
	set(&cfg.Debit, c.Columns.Debit)
	set(&cfg.Credit, c.Columns.Credit)
	set(&cfg.Balance, c.Columns.Balance)
	set(&cfg.PreviousBalance, c.Columns.PreviousBalance)
	return cfg, cfg.Date >= 0
}

// Apply overlays the configured mapping overrides on auto-detected
// mappings, clearing their auto flag.
func (c *Config) Apply(mappings []model.LedgerMapping) []model.LedgerMapping {
	out := make([]model.LedgerMapping, len(mappings))
	copy(out, mappings)
	for _, ov := range c.Mappings {
		sign := ov.Sign
		if sign == 0 {
			sign = 1
		}
		for i := range out {
			if out[i].AccountCode != ov.Code {
				continue
			}
			out[i].Statement = model.StatementTarget(ov.Statement)
			out[i].Field = ov.Field
			out[i].Sign = sign
			out[i].AutoDetected = false
		}
	}
	return out
}
