package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "Abc123Def456Ghi789Jkl012Mno345Pqr678St" // 38 chars

const fullMessage = "New gem: $FOO `" + testContract + "` " +
	"**Price:** $0.002 **Market Cap:** $500k **Holders:** 120 **Top10:** 12.5%"

func TestParse_FullMessage(t *testing.T) {
	info, err := Parse(fullMessage)
	require.NoError(t, err)

	assert.Equal(t, "FOO", info.TokenName)
	assert.Equal(t, testContract, info.ContractAddress)
	assert.Equal(t, "$0.002", info.Price)
	assert.Equal(t, "$500k", info.MarketCap)
	assert.Equal(t, "120", info.Holders)
	assert.Equal(t, "12.5%", info.Top10Concentration)
}

func TestParse_SurroundingProse(t *testing.T) {
	text := "🚀 huge call incoming, do not miss this one\n\n" + fullMessage +
		"\n\nnot financial advice, dyor"

	info, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "FOO", info.TokenName)
	assert.Equal(t, testContract, info.ContractAddress)
}

func TestParse_MissingField(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			// No "$" anywhere, so the symbol rule has nothing to match.
			name: "missing token symbol",
			text: "New gem: FOO `" + testContract + "` " +
				"**Price:** 0.002 **Market Cap:** 500k **Holders:** 120 **Top10:** 12.5%",
		},
		{
			name: "missing contract address",
			text: "New gem: $FOO **Price:** $0.002 **Market Cap:** $500k " +
				"**Holders:** 120 **Top10:** 12.5%",
		},
		{
			name: "contract address too short",
			text: "New gem: $FOO `" + testContract[:31] + "` " +
				"**Price:** $0.002 **Market Cap:** $500k **Holders:** 120 **Top10:** 12.5%",
		},
		{
			name: "missing price label",
			text: strings.Replace(fullMessage, "**Price:**", "Price:", 1),
		},
		{
			name: "missing market cap label",
			text: strings.Replace(fullMessage, "**Market Cap:**", "**MC:**", 1),
		},
		{
			name: "missing holders label",
			text: strings.Replace(fullMessage, "**Holders:** 120 ", "", 1),
		},
		{
			name: "missing top10 percent sign",
			text: strings.Replace(fullMessage, "12.5%", "12.5", 1),
		},
		{
			name: "empty text",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.text)
			require.ErrorIs(t, err, ErrFieldMissing)
			assert.Nil(t, info, "partial matches must never yield a record")
		})
	}
}

func TestParse_MaxLengthContract(t *testing.T) {
	contract := strings.Repeat("A1b2", 11) // 44 chars
	text := "$BAR `" + contract + "` **Price:** $1.00 **Market Cap:** $2M " +
		"**Holders:** 9 **Top10:** 99.9%"

	info, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, contract, info.ContractAddress)
}

func TestParse_ValuesKeptVerbatim(t *testing.T) {
	text := "$X9 `" + testContract + "` **Price:** $1,234.56 " +
		"**Market Cap:** $1.2M **Holders:** 04200 **Top10:** 0.5%"

	info, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "$1,234.56", info.Price)
	assert.Equal(t, "$1.2M", info.MarketCap)
	assert.Equal(t, "04200", info.Holders)
	assert.Equal(t, "0.5%", info.Top10Concentration)
}
