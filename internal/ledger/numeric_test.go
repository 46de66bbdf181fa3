package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseNumericCell_BrazilianFormat(t *testing.T) {
	assert.True(t, dec("1234.56").Equal(ParseNumericCell("1.234,56")))
	assert.True(t, dec("1234567.89").Equal(ParseNumericCell("1.234.567,89")))
	assert.True(t, dec("0.5").Equal(ParseNumericCell("0,5")))
}

func TestParseNumericCell_Parentheses(t *testing.T) {
	assert.True(t, dec("-500").Equal(ParseNumericCell("(500)")))
	assert.True(t, dec("-1234.56").Equal(ParseNumericCell("(1.234,56)")))
}

func TestParseNumericCell_Marker(t *testing.T) {
	assert.True(t, dec("100").Equal(ParseNumericCell("100,00D")))
	assert.True(t, dec("250.75").Equal(ParseNumericCell("250,75 C")))
}

func TestParseNumericCell_Garbage(t *testing.T) {
	assert.True(t, ParseNumericCell("abc").IsZero())
	assert.True(t, ParseNumericCell("").IsZero())
	assert.True(t, ParseNumericCell(nil).IsZero())
	assert.True(t, ParseNumericCell(struct{}{}).IsZero())
}

func TestParseNumericCell_Float(t *testing.T) {
	assert.True(t, dec("42.5").Equal(ParseNumericCell(42.5)))
}

func TestParseAmount_Tag(t *testing.T) {
	v, tag := parseAmount("600,00C")
	assert.True(t, dec("600").Equal(v))
	assert.Equal(t, "C", string(tag))

	_, tag = parseAmount("600,00")
	assert.Empty(t, string(tag))
}

func TestParseDateCell_Shapes(t *testing.T) {
	assert.Equal(t, date(2023, 1, 5), ParseDateCell("05/01/2023"))
	assert.Equal(t, date(2023, 1, 5), ParseDateCell("5/1/23"))
	assert.True(t, ParseDateCell("31/02/x").IsZero())
	assert.True(t, ParseDateCell("Receita de Vendas").IsZero())
	assert.True(t, ParseDateCell(nil).IsZero())
}

func TestParseDateCell_Serial(t *testing.T) {
	// 2023-01-05 is serial 44931 in the 1900 system.
	assert.Equal(t, date(2023, 1, 5), ParseDateCell(float64(44931)))
	assert.Equal(t, date(2023, 1, 5), ParseDateCell("44931"))
	// Plain amounts are not dates.
	assert.True(t, ParseDateCell(float64(600)).IsZero())
	assert.True(t, ParseDateCell(float64(1234567)).IsZero())
}
