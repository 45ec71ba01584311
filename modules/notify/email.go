package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Operator-facing email rendering. Content mirrors what the campaign team
// expects in their inbox: a short headline plus a detail card.

var reservationHTML = template.Must(template.New("reservation").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4F46E5;">New VIP Reservation Received!</h2>
  <div style="background: #F3F4F6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #1F2937; margin-top: 0;">Reservation Details:</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Phone:</strong> {{.Phone}}</p>
    <p><strong>Payment Method:</strong> {{.PaymentMethod}}</p>
    <p><strong>Amount:</strong> ${{.Amount}}</p>
    {{if .Tier}}<p><strong>Tier:</strong> {{.Tier}}</p>{{end}}
    <p><strong>Timestamp:</strong> {{.Timestamp}}</p>
  </div>
  <p style="color: #6B7280; font-size: 12px;">This is an automated notification from the Kingdom Chronicles landing page.</p>
</div>`))

var subscriptionHTML = template.Must(template.New("subscription").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4F46E5;">New Email Subscription!</h2>
  <div style="background: #F3F4F6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Name}}<p><strong>Name:</strong> {{.Name}}</p>{{end}}
    <p><strong>Timestamp:</strong> {{.Timestamp}}</p>
  </div>
  <p style="color: #6B7280; font-size: 12px;">This is an automated notification from the Kingdom Chronicles landing page.</p>
</div>`))

type renderedEmail struct {
	Subject string
	HTML    string
	Text    string
	Tag     string
}

func renderReservationEmail(p reservationPayload, now time.Time) (renderedEmail, error) {
	data := struct {
		reservationPayload
		Timestamp string
	}{p, now.Format(time.RFC1123)}
	if data.Phone == "" {
		data.Phone = "Not provided"
	}

	var html strings.Builder
	if err := reservationHTML.Execute(&html, data); err != nil {
		return renderedEmail{}, err
	}

	text := fmt.Sprintf(`New VIP Reservation Received!

Name: %s
Email: %s
Phone: %s
Payment Method: %s
Amount: $%d
Timestamp: %s`,
		p.Name, p.Email, data.Phone, p.PaymentMethod, p.Amount, data.Timestamp)
	if p.Tier != "" {
		text += "\nTier: " + p.Tier
	}

	return renderedEmail{
		Subject: fmt.Sprintf("New VIP Reservation - %s", orUnknown(p.Name)),
		HTML:    html.String(),
		Text:    text,
		Tag:     "reservation",
	}, nil
}

func renderSubscriptionEmail(p signupPayload, now time.Time) (renderedEmail, error) {
	data := struct {
		signupPayload
		Timestamp string
	}{p, now.Format(time.RFC1123)}

	var html strings.Builder
	if err := subscriptionHTML.Execute(&html, data); err != nil {
		return renderedEmail{}, err
	}

	text := fmt.Sprintf(`New Email Subscription!

Email: %s
Timestamp: %s`, p.Email, data.Timestamp)
	if p.Name != "" {
		text += "\nName: " + p.Name
	}

	return renderedEmail{
		Subject: fmt.Sprintf("New Email Subscription - %s", orUnknown(p.Email)),
		HTML:    html.String(),
		Text:    text,
		Tag:     "signup",
	}, nil
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
