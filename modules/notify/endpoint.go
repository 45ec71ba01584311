package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kingdomchronicles/funnel/pkg/logger"
	"github.com/kingdomchronicles/funnel/pkg/mailer"
)

// Endpoint is the stateless notification sink: it accepts a dispatched
// envelope and relays it to the operator as an email. Nothing is persisted
// or deduplicated; each call stands alone.
type Endpoint struct {
	sender mailer.Sender
	// destination overrides the caller-supplied "to" address when set.
	// The wire "to" field is advisory only.
	destination string
	log         *slog.Logger
	now         func() time.Time
}

// NewEndpoint creates the notification endpoint handler.
// destination, when non-empty, overrides the advisory "to" field of incoming
// envelopes.
func NewEndpoint(sender mailer.Sender, destination string, log *slog.Logger) *Endpoint {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Endpoint{
		sender:      sender,
		destination: destination,
		log:         log,
		now:         time.Now,
	}
}

type incomingEnvelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
	To   string          `json:"to"`
}

type endpointResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ServeHTTP implements the endpoint contract:
// 200 {success:true} on acceptance, 400 {error} on malformed input,
// 405 on non-POST, 500 {success:false, error} when the mail relay fails.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var env incomingEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if env.Type == "" || len(env.Data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required fields"})
		return
	}

	rendered, err := e.render(env)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	to := env.To
	if e.destination != "" {
		to = e.destination
	}
	if to == "" {
		e.log.ErrorContext(r.Context(), "notification endpoint has no destination address")
		writeJSON(w, http.StatusInternalServerError, endpointResponse{
			Success: false,
			Error:   "Email service not configured",
		})
		return
	}

	msg := mailer.Message{
		To:       to,
		Subject:  rendered.Subject,
		BodyHTML: rendered.HTML,
		BodyText: rendered.Text,
		Tag:      rendered.Tag,
	}
	if err := e.sender.Send(r.Context(), msg); err != nil {
		e.log.ErrorContext(r.Context(), "failed to send notification email",
			logger.Event(string(env.Type)), logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, endpointResponse{
			Success: false,
			Error:   "Failed to send email",
		})
		return
	}

	e.log.InfoContext(r.Context(), "notification email sent",
		logger.Event(string(env.Type)))
	writeJSON(w, http.StatusOK, endpointResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}

func (e *Endpoint) render(env incomingEnvelope) (renderedEmail, error) {
	switch env.Type {
	case KindReservation:
		var p reservationPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return renderedEmail{}, errMalformedData
		}
		return renderReservationEmail(p, e.now())
	case KindSignup:
		var p signupPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return renderedEmail{}, errMalformedData
		}
		return renderSubscriptionEmail(p, e.now())
	default:
		return renderedEmail{}, errUnknownType
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
