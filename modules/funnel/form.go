package funnel

import (
	"github.com/kingdomchronicles/funnel/pkg/catalog"
	"github.com/kingdomchronicles/funnel/pkg/validator"
)

// Form is the reservation intake form. It is created empty when the flow
// opens, mutated field by field, and discarded without persistence when the
// flow is closed or abandoned.
type Form struct {
	Name  string
	Email string
	Phone string

	selector Selector
	tier     *catalog.FundingTier
}

// SelectMethod requests a payment method selection. Disabled or unknown
// methods are rejected and the current selection is left unchanged.
func (f *Form) SelectMethod(m Method) error {
	return f.selector.Select(m)
}

// Method returns the currently selected payment method, or "".
func (f *Form) Method() Method { return f.selector.Selected() }

// SelectTier associates a funding tier with the reservation. A nil tier
// means the plain $1 VIP reservation.
func (f *Form) SelectTier(t *catalog.FundingTier) { f.tier = t }

// Tier returns the selected tier, or nil.
func (f *Form) Tier() *catalog.FundingTier { return f.tier }

// TierName returns the display name used in notifications: the tier's name,
// or "VIP Reservation" when no tier is selected.
func (f *Form) TierName() string {
	if f.tier != nil {
		return f.tier.Name
	}
	return "VIP Reservation"
}

// Amount derives the reservation amount: the selected tier's amount, or the
// given default when no tier is selected.
func (f *Form) Amount(defaultAmount int) int {
	if f.tier != nil {
		return f.tier.Amount
	}
	return defaultAmount
}

// Reset clears all entered data, returning the form to its opened-empty state.
func (f *Form) Reset() {
	f.Name = ""
	f.Email = ""
	f.Phone = ""
	f.selector.Clear()
	f.tier = nil
}

// validateContact checks the required contact fields. This is the first
// validation stage; payment method checks happen separately so the error
// messages stay distinct.
func (f *Form) validateContact() error {
	return validator.Apply(
		validator.RequiredString("name", f.Name),
		validator.RequiredString("email", f.Email),
		validator.ValidEmail("email", f.Email),
	)
}
