package funnel

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kingdomchronicles/funnel/pkg/catalog"
	"github.com/kingdomchronicles/funnel/pkg/validator"
)

// Service exposes the funnel flows over HTTP. Each request runs a fresh flow
// instance: the wire protocol is stateless, all per-submission state travels
// in the request body.
type Service struct {
	cat        *catalog.Catalog
	cfg        Config
	dispatcher Dispatcher
	log        *slog.Logger
}

// NewService creates the funnel HTTP service.
func NewService(cat *catalog.Catalog, d Dispatcher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		cat:        cat,
		cfg:        ConfigFromCatalog(cat),
		dispatcher: d,
		log:        log,
	}
}

// Handle returns the funnel router:
//
//	GET  /catalog                   tiers, perks, offers, payment methods
//	POST /signup                    email-list signup
//	POST /reservations              reservation submission
//	POST /reservations/usdt/confirm off-band USDT attestation + confirm
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/catalog", s.handleCatalog)
	r.Post("/signup", s.handleSignup)
	r.Post("/reservations", s.handleReservation)
	r.Post("/reservations/usdt/confirm", s.handleUSDTConfirm)
	return r
}

type signupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type reservationRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	TierID        string `json:"tier,omitempty"`
}

type usdtConfirmRequest struct {
	reservationRequest
	Attested bool `json:"attested"`
}

func (s *Service) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, struct {
		Tiers   []catalog.FundingTier `json:"tiers"`
		Perks   []catalog.Perk        `json:"perks"`
		Offers  []catalog.Offer       `json:"offers"`
		Methods []MethodInfo          `json:"paymentMethods"`
		Payment catalog.PaymentConfig `json:"payment"`
	}{
		Tiers:   s.cat.Tiers,
		Perks:   s.cat.Perks,
		Offers:  s.cat.Offers,
		Methods: Methods(),
		Payment: s.cat.Payment,
	})
}

func (s *Service) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	flow := NewSignupFlow(s.dispatcher, s.log)
	if err := flow.Submit(r.Context(), req.Name, req.Email); err != nil {
		if validator.IsValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "Sign-up failed. Please try again.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Thank you for signing up!",
	})
}

func (s *Service) handleReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	flow, ok := s.openFlow(w, req)
	if !ok {
		return
	}

	outcome, err := flow.Submit(r.Context())
	if err != nil {
		s.respondSubmitError(w, err)
		return
	}

	if outcome.USDT != nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":       "usdt_pending",
			"instructions": outcome.USDT.Instructions(),
		})
		return
	}

	if !outcome.Delivery.Delivered {
		respondError(w, http.StatusBadGateway, "Reservation could not be completed. Please try again.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":                "reserved",
		"notificationDelivered": true,
		"message":               "Reservation successful! Check your email for confirmation.",
	})
}

func (s *Service) handleUSDTConfirm(w http.ResponseWriter, r *http.Request) {
	var req usdtConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	// This endpoint is USDT-only; the method field in the body is ignored.
	req.PaymentMethod = string(MethodUSDT)

	flow, ok := s.openFlow(w, req.reservationRequest)
	if !ok {
		return
	}

	outcome, err := flow.Submit(r.Context())
	if err != nil {
		s.respondSubmitError(w, err)
		return
	}

	step := outcome.USDT
	if err := step.SetAttestation(r.Context(), req.Attested); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := step.Confirm(r.Context())
	if err != nil {
		if errors.Is(err, ErrAttestationRequired) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":                "pending_verification",
		"notificationDelivered": result.Delivered,
		"message":               "Reservation confirmed! We will verify your USDT payment and send confirmation.",
	})
}

// openFlow builds a flow preloaded with the request's form data. Tier and
// method selection failures are reported to the client directly.
func (s *Service) openFlow(w http.ResponseWriter, req reservationRequest) (*ReservationFlow, bool) {
	flow := NewReservationFlow(s.cfg, s.dispatcher, s.log)
	flow.SetContact(req.Name, req.Email, req.Phone)

	if req.TierID != "" {
		tier := s.cat.TierByID(req.TierID)
		if tier == nil {
			respondError(w, http.StatusUnprocessableEntity, "unknown funding tier")
			return nil, false
		}
		flow.SelectTier(tier)
	}

	if req.PaymentMethod != "" {
		if err := flow.SelectMethod(Method(req.PaymentMethod)); err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return nil, false
		}
	}
	return flow, true
}

func (s *Service) respondSubmitError(w http.ResponseWriter, err error) {
	switch {
	case validator.IsValidationError(err),
		errors.Is(err, ErrNoMethodSelected),
		errors.Is(err, ErrMethodNotAvailable),
		errors.Is(err, ErrUnknownMethod):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrSubmissionInProgress), errors.Is(err, ErrAlreadySubmitted):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
