package funnel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingdomchronicles/funnel/modules/notify"
	"github.com/kingdomchronicles/funnel/pkg/catalog"
)

// withCardEnabled flips the card method on for the duration of a test so the
// immediate-dispatch branch can be exercised. Tests using it must not run in
// parallel.
func withCardEnabled(t *testing.T) {
	t.Helper()
	for i := range methodCatalog {
		if methodCatalog[i].Method == MethodCard {
			methodCatalog[i].Enabled = true
			t.Cleanup(func() { methodCatalog[i].Enabled = false })
			return
		}
	}
	t.Fatal("card method missing from catalog")
}

type recordingDispatcher struct {
	events []notify.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, event notify.Event) error {
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, event)
	return nil
}

func TestReservationFlow_ImmediateDispatch(t *testing.T) {
	withCardEnabled(t)

	d := &recordingDispatcher{}
	cfg := ConfigFromCatalog(catalog.Default())
	flow := NewReservationFlow(cfg, d, nil)
	flow.SetContact("Grace", "grace@example.com", "+256700000000")
	require.NoError(t, flow.SelectMethod(MethodCard))

	outcome, err := flow.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome.Delivery)
	assert.Nil(t, outcome.USDT)
	assert.True(t, outcome.Delivery.Delivered)

	require.Len(t, d.events, 1)
	event, ok := d.events[0].(notify.ReservationEvent)
	require.True(t, ok)
	assert.Equal(t, "card", event.Method)
	assert.Equal(t, 1, event.Amount)
	assert.Equal(t, "VIP Reservation", event.Tier)

	// Completion clears the form and blocks further submissions.
	assert.Equal(t, PhaseDone, flow.Phase())
	assert.Equal(t, Method(""), flow.SelectedMethod())
	_, err = flow.Submit(context.Background())
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestReservationFlow_DeliveryFailureKeepsForm(t *testing.T) {
	withCardEnabled(t)

	d := &recordingDispatcher{err: errors.New("relay unreachable")}
	cfg := ConfigFromCatalog(catalog.Default())
	flow := NewReservationFlow(cfg, d, nil)
	flow.SetContact("Grace", "grace@example.com", "")
	require.NoError(t, flow.SelectMethod(MethodCard))

	outcome, err := flow.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome.Delivery)
	assert.False(t, outcome.Delivery.Delivered)
	assert.Error(t, outcome.Delivery.Err)

	// The form survives the failed dispatch so the user can retry.
	assert.Equal(t, PhaseIdle, flow.Phase())
	assert.Equal(t, MethodCard, flow.SelectedMethod())
	assert.Equal(t, "Grace", flow.form.Name)

	// Retry succeeds once the relay is back.
	d.err = nil
	outcome, err = flow.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, outcome.Delivery.Delivered)
	require.Len(t, d.events, 1)
}

func TestReservationFlow_TierCarriedInEvent(t *testing.T) {
	withCardEnabled(t)

	cat := catalog.Default()
	d := &recordingDispatcher{}
	flow := NewReservationFlow(ConfigFromCatalog(cat), d, nil)
	flow.SetContact("Grace", "grace@example.com", "")
	flow.SelectTier(cat.TierByID("founder"))
	require.NoError(t, flow.SelectMethod(MethodCard))

	_, err := flow.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, d.events, 1)
	event := d.events[0].(notify.ReservationEvent)
	assert.Equal(t, "Founder", event.Tier)
	assert.Equal(t, 50, event.Amount)
}
