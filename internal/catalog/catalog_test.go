// Copyright the kasfetch authors
// SPDX-License-Identifier: MIT

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := Default()

	parts, err := c.Path(TradeMonthly)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASKdata", "External trade", "Monthly indicators", "08_qarkullimi.px"}, parts)

	assert.Equal(t, "tab01.px", c.Table(EnergyMonthly))
	assert.Equal(t, "ASKdata/Energy/Monthly indicators/tab01.px", c.PathString(EnergyMonthly))

	_, err = c.Path("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.Empty(t, c.Table("nope"))
	assert.Empty(t, c.PathString("nope"))
}

func TestPathReturnsACopy(t *testing.T) {
	t.Parallel()

	c := Default()
	parts, err := c.Path(TradeMonthly)
	require.NoError(t, err)

	parts[0] = "mutated"

	fresh, err := c.Path(TradeMonthly)
	require.NoError(t, err)
	assert.Equal(t, "ASKdata", fresh[0])
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "tables.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("valid override", func(t *testing.T) {
		t.Parallel()

		c := Default()
		path := writeFile(t, `
trade_monthly:
  - ASKdata
  - External trade
  - Monthly indicators
  - 09_new_table.px
`)

		require.NoError(t, c.LoadOverrides(path))
		assert.Equal(t, "09_new_table.px", c.Table(TradeMonthly))
		// untouched entries survive
		assert.Equal(t, "tab01.px", c.Table(EnergyMonthly))
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		t.Parallel()

		c := Default()
		path := writeFile(t, "bogus_table: [ASKdata, tab.px]\n")

		err := c.LoadOverrides(path)
		assert.ErrorIs(t, err, ErrParsing)
		assert.ErrorIs(t, err, ErrUnknownTable)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		t.Parallel()

		c := Default()
		path := writeFile(t, "trade_monthly: []\n")

		assert.ErrorIs(t, c.LoadOverrides(path), ErrParsing)
	})

	t.Run("broken yaml", func(t *testing.T) {
		t.Parallel()

		c := Default()
		path := writeFile(t, "trade_monthly: [unbalanced\n")

		assert.ErrorIs(t, c.LoadOverrides(path), ErrParsing)
	})

	t.Run("empty file is a no-op", func(t *testing.T) {
		t.Parallel()

		c := Default()
		path := writeFile(t, "")

		require.NoError(t, c.LoadOverrides(path))
		assert.Equal(t, "tab01.px", c.Table(EnergyMonthly))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		c := Default()
		assert.Error(t, c.LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml")))
	})
}
