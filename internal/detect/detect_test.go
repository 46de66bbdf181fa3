package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balanco-dev/balanco/internal/model"
)

func TestColumns_LabeledHeader(t *testing.T) {
	rows := []model.RawRow{
		{"Empresa: ACME Ltda"},
		{"Data", "Histórico", "Débito", "Crédito", "Saldo"},
		{"05/01/2023", "Venda", nil, "100,00", "100,00"},
	}

	cfg, ok := Columns(rows)
	require.True(t, ok)
	assert.Equal(t, 0, cfg.Date)
	assert.Equal(t, 1, cfg.Description)
	assert.Equal(t, 2, cfg.Debit)
	assert.Equal(t, 3, cfg.Credit)
	assert.Equal(t, 4, cfg.Balance)
	assert.Equal(t, -1, cfg.PreviousBalance)
}

func TestColumns_SaldoVariants(t *testing.T) {
	rows := []model.RawRow{
		{"Data", "Débito", "Crédito", "Saldo do Exercício Anterior", "Saldo Atual"},
	}

	cfg, ok := Columns(rows)
	require.True(t, ok)
	assert.Equal(t, 3, cfg.PreviousBalance)
	assert.Equal(t, 4, cfg.Balance)
}

func TestColumns_PositionalFallback(t *testing.T) {
	rows := []model.RawRow{
		{"Razão Geral"},
		{"1.1.01", "Caixa Geral"},
		{"05/01/2023", "Recebimento NF 10", "1.500,00", "0,00", "1.500,00"},
	}

	cfg, ok := Columns(rows)
	require.True(t, ok)
	assert.Equal(t, 0, cfg.Date)
	assert.Equal(t, 1, cfg.Description)
	assert.Equal(t, 2, cfg.Debit)
	assert.Equal(t, 3, cfg.Credit)
	assert.Equal(t, 4, cfg.Balance)
}

func TestColumns_NoQualifyingRow(t *testing.T) {
	rows := []model.RawRow{
		{"Empresa: ACME Ltda"},
		{"só texto", "mais texto"},
	}

	_, ok := Columns(rows)
	assert.False(t, ok)
}

func TestColumns_SerialDatesQualify(t *testing.T) {
	rows := []model.RawRow{
		{float64(44931), "Recebimento", float64(100), float64(0), float64(100)},
	}

	cfg, ok := Columns(rows)
	require.True(t, ok)
	assert.Equal(t, 0, cfg.Date)
	assert.Equal(t, 2, cfg.Debit)
	assert.Equal(t, 3, cfg.Credit)
}

func TestIsDateCell(t *testing.T) {
	assert.True(t, IsDateCell("05/01/2023"))
	assert.True(t, IsDateCell("5/1/23"))
	assert.True(t, IsDateCell(float64(44931)))
	assert.True(t, IsDateCell("44931"))

	assert.False(t, IsDateCell("1.500,00"))
	assert.False(t, IsDateCell(float64(600)))
	assert.False(t, IsDateCell("Caixa"))
	assert.False(t, IsDateCell(nil))
}
