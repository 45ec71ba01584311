package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingdomchronicles/funnel/pkg/catalog"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := catalog.Default()
	require.NoError(t, c.Validate())

	assert.NotEmpty(t, c.Tiers)
	assert.NotEmpty(t, c.Perks)
	assert.NotEmpty(t, c.Offers)
	assert.Equal(t, 1, c.Payment.ReservationAmount)
	assert.Equal(t, "TRC-20", c.Payment.USDTNetwork)
}

func TestTierByID(t *testing.T) {
	t.Parallel()

	c := catalog.Default()

	founder := c.TierByID("founder")
	require.NotNil(t, founder)
	assert.Equal(t, 50, founder.Amount)

	assert.Nil(t, c.TierByID("unknown"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*catalog.Catalog)
	}{
		{"duplicate tier id", func(c *catalog.Catalog) { c.Tiers = append(c.Tiers, c.Tiers[0]) }},
		{"empty tier id", func(c *catalog.Catalog) { c.Tiers[0].ID = "" }},
		{"empty tier name", func(c *catalog.Catalog) { c.Tiers[0].Name = "" }},
		{"non-positive tier amount", func(c *catalog.Catalog) { c.Tiers[0].Amount = 0 }},
		{"non-positive reservation amount", func(c *catalog.Catalog) { c.Payment.ReservationAmount = 0 }},
		{"missing wallet address", func(c *catalog.Catalog) { c.Payment.USDTWalletAddress = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := catalog.Default()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), catalog.ErrInvalidCatalog)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
tiers:
  - id: founder
    name: Founder
    amount: 50
    benefits:
      - Founder badge
payment:
  reservation_amount: 1
  currency: USD
  usdt_wallet_address: TTestWallet
  usdt_network: TRC-20
`), 0o600))

		c, err := catalog.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, c.Tiers, 1)
		assert.Equal(t, 50, c.Tiers[0].Amount)
		assert.Equal(t, "TTestWallet", c.Payment.USDTWalletAddress)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, catalog.ErrLoadCatalog)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tiers: [unclosed"), 0o600))

		_, err := catalog.LoadFile(path)
		assert.ErrorIs(t, err, catalog.ErrLoadCatalog)
	})

	t.Run("invalid data", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
tiers: []
payment:
  reservation_amount: 0
`), 0o600))

		_, err := catalog.LoadFile(path)
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := catalog.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Tiers)
}
