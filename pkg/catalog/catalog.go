// Package catalog holds the static marketing data behind the launch funnel:
// funding tiers, VIP perks, current offers, and payment configuration.
// The catalog is loaded once at startup and never mutated at runtime.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FundingTier is a named funding level with a fixed contribution amount.
type FundingTier struct {
	ID               string   `yaml:"id" json:"id"`
	Name             string   `yaml:"name" json:"name"`
	Amount           int      `yaml:"amount" json:"amount"`
	Benefits         []string `yaml:"benefits" json:"benefits"`
	Badge            string   `yaml:"badge,omitempty" json:"badge,omitempty"`
	EstimatedBackers int      `yaml:"estimated_backers,omitempty" json:"estimatedBackers,omitempty"`
}

// Perk is a VIP membership benefit shown on the landing page.
type Perk struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// Offer is a time-boxed promotion shown on the landing page.
type Offer struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Badge       string `yaml:"badge,omitempty" json:"badge,omitempty"`
}

// PaymentConfig describes how reservations are paid for.
type PaymentConfig struct {
	// ReservationAmount is the default amount (whole currency units) when no
	// tier is selected.
	ReservationAmount int    `yaml:"reservation_amount" json:"reservationAmount"`
	Currency          string `yaml:"currency" json:"currency"`
	USDTWalletAddress string `yaml:"usdt_wallet_address" json:"usdtWalletAddress"`
	USDTNetwork       string `yaml:"usdt_network" json:"usdtNetwork"`
}

// Catalog bundles all static funnel data.
type Catalog struct {
	Tiers   []FundingTier `yaml:"tiers" json:"tiers"`
	Perks   []Perk        `yaml:"perks" json:"perks"`
	Offers  []Offer       `yaml:"offers" json:"offers"`
	Payment PaymentConfig `yaml:"payment" json:"payment"`
}

// TierByID returns the tier with the given id, or nil.
func (c *Catalog) TierByID(id string) *FundingTier {
	for i := range c.Tiers {
		if c.Tiers[i].ID == id {
			return &c.Tiers[i]
		}
	}
	return nil
}

// Validate checks catalog integrity: unique tier ids, positive amounts,
// and a usable payment configuration.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Tiers))
	for _, tier := range c.Tiers {
		if tier.ID == "" {
			return fmt.Errorf("%w: tier with empty id", ErrInvalidCatalog)
		}
		if seen[tier.ID] {
			return fmt.Errorf("%w: duplicate tier id %q", ErrInvalidCatalog, tier.ID)
		}
		seen[tier.ID] = true
		if tier.Name == "" {
			return fmt.Errorf("%w: tier %q has no name", ErrInvalidCatalog, tier.ID)
		}
		if tier.Amount <= 0 {
			return fmt.Errorf("%w: tier %q has non-positive amount %d", ErrInvalidCatalog, tier.ID, tier.Amount)
		}
	}

	if c.Payment.ReservationAmount <= 0 {
		return fmt.Errorf("%w: reservation amount must be positive", ErrInvalidCatalog)
	}
	if c.Payment.USDTWalletAddress == "" {
		return fmt.Errorf("%w: USDT wallet address is required", ErrInvalidCatalog)
	}
	return nil
}

// LoadFile reads a catalog from a YAML file and validates it.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load returns the catalog from the given path, or the compiled-in defaults
// when the path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
