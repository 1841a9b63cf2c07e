package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billcraft/billcraft/internal/config"
)

func TestNewRateTable(t *testing.T) {
	table, err := NewRateTable([]config.RateEntry{
		{From: "USD", To: "NGN", Rate: "800"},
		{From: "eur", To: "usd", Rate: "1.08"},
	})
	require.NoError(t, err)
	assert.Len(t, table, 2)

	// codes are normalized to lowercase
	rate, ok := table[Pair{From: "usd", To: "ngn"}]
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(800)))
}

func TestNewRateTable_InvalidRate(t *testing.T) {
	_, err := NewRateTable([]config.RateEntry{
		{From: "usd", To: "ngn", Rate: "not-a-number"},
	})
	assert.Error(t, err)

	_, err = NewRateTable([]config.RateEntry{
		{From: "usd", To: "ngn", Rate: "-1"},
	})
	assert.Error(t, err)

	_, err = NewRateTable([]config.RateEntry{
		{From: "usd", To: "ngn", Rate: "0"},
	})
	assert.Error(t, err)
}

func TestConvert_Identity(t *testing.T) {
	// identity holds regardless of table contents, including a table that
	// carries a rate for the same pair
	table, err := NewRateTable([]config.RateEntry{
		{From: "usd", To: "usd", Rate: "2"},
	})
	require.NoError(t, err)

	amount := decimal.RequireFromString("123.45")
	got := Convert(amount, "usd", "usd", table)
	assert.True(t, got.Amount.Equal(amount))
	assert.False(t, got.Unconverted)

	got = Convert(amount, "USD", "usd", nil)
	assert.True(t, got.Amount.Equal(amount))
	assert.False(t, got.Unconverted)
}

func TestConvert_ForwardRate(t *testing.T) {
	table, err := NewRateTable([]config.RateEntry{
		{From: "usd", To: "ngn", Rate: "800"},
	})
	require.NoError(t, err)

	got := Convert(decimal.NewFromInt(10), "usd", "ngn", table)
	assert.False(t, got.Unconverted)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(8000)))

	// fractional amounts stay exact under decimal math
	got = Convert(decimal.RequireFromString("0.10"), "usd", "ngn", table)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(80)))
}

func TestConvert_MissingRatePassthrough(t *testing.T) {
	table, err := NewRateTable([]config.RateEntry{
		{From: "usd", To: "ngn", Rate: "800"},
	})
	require.NoError(t, err)

	// reverse direction is not implied by the forward rate
	amount := decimal.NewFromInt(1000)
	got := Convert(amount, "ngn", "usd", table)
	assert.True(t, got.Unconverted)
	assert.True(t, got.Amount.Equal(amount))
}

func TestConvert_RepeatedSumsStayExact(t *testing.T) {
	table, err := NewRateTable([]config.RateEntry{
		{From: "usd", To: "eur", Rate: "0.1"},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		sum = sum.Add(Convert(decimal.RequireFromString("0.1"), "usd", "eur", table).Amount)
	}
	// 1000 * 0.01 with no binary floating point drift
	assert.True(t, sum.Equal(decimal.NewFromInt(10)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$10.50", FormatAmount(decimal.RequireFromString("10.5"), "usd"))
	assert.Equal(t, "₦9000.00", FormatAmount(decimal.NewFromInt(9000), "NGN"))
	// unknown codes fall back to the code itself
	assert.Equal(t, "xxx1.00", FormatAmount(decimal.NewFromInt(1), "xxx"))
}
