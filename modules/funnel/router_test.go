package funnel_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingdomchronicles/funnel/modules/funnel"
	"github.com/kingdomchronicles/funnel/modules/notify"
	"github.com/kingdomchronicles/funnel/pkg/catalog"
)

func newTestService(d funnel.Dispatcher) http.Handler {
	return funnel.NewService(catalog.Default(), d, nil).Handle()
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestService_Catalog(t *testing.T) {
	t.Parallel()

	h := newTestService(&mockDispatcher{})
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	tiers, ok := body["tiers"].([]any)
	require.True(t, ok)
	assert.Len(t, tiers, 7)

	methods, ok := body["paymentMethods"].([]any)
	require.True(t, ok)
	assert.Len(t, methods, 4)

	payment, ok := body["payment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), payment["reservationAmount"])
	assert.Equal(t, "TRC-20", payment["usdtNetwork"])
}

func TestService_Signup(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{}
		rec := postJSON(t, newTestService(d), "/signup", map[string]string{
			"name":  "Grace",
			"email": "grace@example.com",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])
		assert.Len(t, d.dispatched(), 1)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{}
		rec := postJSON(t, newTestService(d), "/signup", map[string]string{
			"name":  "Grace",
			"email": "nope",
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Empty(t, d.dispatched())
	})

	t.Run("delivery failure", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{err: errors.New("relay down")}
		rec := postJSON(t, newTestService(d), "/signup", map[string]string{
			"name":  "Grace",
			"email": "grace@example.com",
		})

		require.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		newTestService(&mockDispatcher{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestService_Reservation(t *testing.T) {
	t.Parallel()

	t.Run("usdt hands off to confirmation", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{}
		rec := postJSON(t, newTestService(d), "/reservations", map[string]string{
			"name":          "Grace",
			"email":         "grace@example.com",
			"paymentMethod": "usdt",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "usdt_pending", body["status"])

		instructions, ok := body["instructions"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "TXNxp5psNN3dtXFM8ggPc9G56LxzLaQxdU", instructions["walletAddress"])
		assert.Equal(t, float64(1), instructions["amount"])

		// Handing off must not notify anyone yet.
		assert.Empty(t, d.dispatched())
	})

	t.Run("tier drives the amount", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestService(&mockDispatcher{}), "/reservations", map[string]string{
			"name":          "Grace",
			"email":         "grace@example.com",
			"paymentMethod": "usdt",
			"tier":          "founder",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		instructions := decodeBody(t, rec)["instructions"].(map[string]any)
		assert.Equal(t, float64(50), instructions["amount"])
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestService(&mockDispatcher{}), "/reservations", map[string]string{
			"paymentMethod": "usdt",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("no payment method", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestService(&mockDispatcher{}), "/reservations", map[string]string{
			"name":  "Grace",
			"email": "grace@example.com",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "select a payment method")
	})

	t.Run("disabled method", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestService(&mockDispatcher{}), "/reservations", map[string]string{
			"name":          "Grace",
			"email":         "grace@example.com",
			"paymentMethod": "card",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "not yet available")
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()

		rec := postJSON(t, newTestService(&mockDispatcher{}), "/reservations", map[string]string{
			"name":          "Grace",
			"email":         "grace@example.com",
			"paymentMethod": "usdt",
			"tier":          "platinum",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestService_USDTConfirm(t *testing.T) {
	t.Parallel()

	t.Run("attested", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{}
		rec := postJSON(t, newTestService(d), "/reservations/usdt/confirm", map[string]any{
			"name":     "Grace",
			"email":    "grace@example.com",
			"phone":    "+256700000000",
			"tier":     "founder",
			"attested": true,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "pending_verification", body["status"])
		assert.Equal(t, true, body["notificationDelivered"])

		events := d.dispatched()
		require.Len(t, events, 1)
		event, ok := events[0].(notify.ReservationEvent)
		require.True(t, ok)
		assert.Equal(t, "usdt", event.Method)
		assert.Equal(t, 50, event.Amount)
		assert.Equal(t, "Founder", event.Tier)
	})

	t.Run("not attested", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{}
		rec := postJSON(t, newTestService(d), "/reservations/usdt/confirm", map[string]any{
			"name":     "Grace",
			"email":    "grace@example.com",
			"attested": false,
		})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeBody(t, rec)["error"], "confirm you sent payment")
		assert.Empty(t, d.dispatched())
	})

	t.Run("delivery failure still confirms", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{err: errors.New("relay down")}
		rec := postJSON(t, newTestService(d), "/reservations/usdt/confirm", map[string]any{
			"name":     "Grace",
			"email":    "grace@example.com",
			"attested": true,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "pending_verification", body["status"])
		assert.Equal(t, false, body["notificationDelivered"])
	})

	t.Run("method field is ignored", func(t *testing.T) {
		t.Parallel()

		d := &mockDispatcher{}
		rec := postJSON(t, newTestService(d), "/reservations/usdt/confirm", map[string]any{
			"name":          "Grace",
			"email":         "grace@example.com",
			"paymentMethod": "card",
			"attested":      true,
		})

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
