// Package funnel implements the VIP reservation intake flow: payment method
// selection, form validation, the off-band USDT confirmation step, and the
// HTTP surface that drives them.
package funnel

import "fmt"

// Method is a payment method identifier. The set is closed.
type Method string

const (
	MethodCard        Method = "card"
	MethodMobileMoney Method = "mobile-money"
	MethodPayPal      Method = "paypal"
	MethodUSDT        Method = "usdt"
)

// MethodInfo describes a payment method and whether it can be selected.
type MethodInfo struct {
	Method         Method `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Enabled        bool   `json:"enabled"`
	ComingSoonText string `json:"comingSoonText,omitempty"`
}

// methodCatalog is the closed set of payment methods. Only USDT is enabled
// until the card/mobile-money/PayPal processors are integrated.
var methodCatalog = []MethodInfo{
	{
		Method:         MethodCard,
		Name:           "Visa / Mastercard",
		Description:    "Pay with your credit or debit card",
		Enabled:        false,
		ComingSoonText: "Coming Soon",
	},
	{
		Method:         MethodMobileMoney,
		Name:           "Mobile Money",
		Description:    "Pay via mobile money (MTN, Airtel, etc.)",
		Enabled:        false,
		ComingSoonText: "Coming Soon",
	},
	{
		Method:         MethodPayPal,
		Name:           "PayPal",
		Description:    "Pay securely with PayPal",
		Enabled:        false,
		ComingSoonText: "Coming Soon",
	},
	{
		Method:      MethodUSDT,
		Name:        "USDT (TRC-20)",
		Description: "Pay with USDT cryptocurrency",
		Enabled:     true,
	},
}

// Methods returns the closed set of payment methods with their enabled state.
func Methods() []MethodInfo {
	out := make([]MethodInfo, len(methodCatalog))
	copy(out, methodCatalog)
	return out
}

// MethodInfoFor returns the descriptor for a method, if it exists.
func MethodInfoFor(m Method) (MethodInfo, bool) {
	for _, info := range methodCatalog {
		if info.Method == m {
			return info, true
		}
	}
	return MethodInfo{}, false
}

// Selector tracks the user's payment method choice. Attempts to select an
// unknown or disabled method fail without changing the current selection.
type Selector struct {
	selected Method
}

// Select requests a method selection.
func (s *Selector) Select(m Method) error {
	info, ok := MethodInfoFor(m)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
	if !info.Enabled {
		return fmt.Errorf("%w: %s", ErrMethodNotAvailable, info.Name)
	}
	s.selected = m
	return nil
}

// Selected returns the current selection, or "" when nothing is selected.
func (s *Selector) Selected() Method { return s.selected }

// Clear removes the current selection.
func (s *Selector) Clear() { s.selected = "" }
