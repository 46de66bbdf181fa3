package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balanco-dev/balanco/internal/model"
)

func intp(v int) *int { return &v }

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balanco.yaml")
	in := &Config{
		Company: "ACME Ltda",
		Sheet:   "Razão",
		Columns: &ColumnsConfig{Date: intp(0), Debit: intp(2), Credit: intp(3)},
		Mappings: []MappingOverride{
			{Code: "3.1.01", Statement: "income_statement", Field: "gross_revenue"},
		},
	}

	require.NoError(t, Save(path, in))
	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balanco.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestColumnConfig(t *testing.T) {
	cfg := &Config{Columns: &ColumnsConfig{Date: intp(1), Debit: intp(4)}}

	cc, ok := cfg.ColumnConfig()
	require.True(t, ok)
	assert.Equal(t, 1, cc.Date)
	assert.Equal(t, 4, cc.Debit)
	assert.Equal(t, -1, cc.Credit)
	assert.Equal(t, -1, cc.Balance)
}

func TestColumnConfig_Unconfigured(t *testing.T) {
	_, ok := (&Config{}).ColumnConfig()
	assert.False(t, ok)

	// A layout without a date column cannot drive the parser.
	_, ok = (&Config{Columns: &ColumnsConfig{Debit: intp(2)}}).ColumnConfig()
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	cfg := &Config{Mappings: []MappingOverride{
		{Code: "3.1.01", Statement: "income_statement", Field: model.FieldOtherOperating, Sign: -1},
		{Code: "9.9.99", Statement: "ignore"},
	}}
	mappings := []model.LedgerMapping{
		{AccountCode: "3.1.01", Statement: model.TargetIncomeStatement, Field: model.FieldGrossRevenue, Sign: 1, AutoDetected: true},
		{AccountCode: "1.1.01", Statement: model.TargetBalanceSheet, Field: model.FieldCash, Sign: 1, AutoDetected: true},
	}

	out := cfg.Apply(mappings)

	assert.Equal(t, model.FieldOtherOperating, out[0].Field)
	assert.Equal(t, -1, out[0].Sign)
	assert.False(t, out[0].AutoDetected)
	assert.True(t, out[1].AutoDetected)
	// Overrides for absent accounts are silently ignored.
	assert.Len(t, out, 2)
	// The input slice is left untouched.
	assert.True(t, mappings[0].AutoDetected)
}
