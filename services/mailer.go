package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/roman-z-solik/table-booking/config"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

// Mailer sends transactional email through an HTTP mail API. All booking
// notifications are best effort: callers log failures and move on, a lost
// email never fails the operation that triggered it.
type Mailer struct {
	Endpoint    string
	APIKey      string
	SenderEmail string
	SenderName  string
	Restaurant  config.Restaurant
	Client      *http.Client
}

func NewMailer(rest config.Restaurant) *Mailer {
	return &Mailer{
		Endpoint:    envOr("MAIL_API_URL", "https://api.brevo.com/v3/smtp/email"),
		APIKey:      os.Getenv("MAIL_API_KEY"),
		SenderEmail: envOr("MAIL_SENDER", rest.ContactEmail),
		SenderName:  envOr("MAIL_SENDER_NAME", rest.Name),
		Restaurant:  rest,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Enabled reports whether the mail API is configured. When it is not, Send
// becomes a no-op so development setups work without credentials.
func (m *Mailer) Enabled() bool {
	return m != nil && m.APIKey != ""
}

type mailPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (m *Mailer) Send(toEmail, toName, subject, htmlContent string) error {
	if !m.Enabled() {
		utils.InfoLogger.Printf("Mailer disabled, skipping email %q to %s", subject, toEmail)
		return nil
	}

	payload := mailPayload{
		Sender:      map[string]string{"name": m.SenderName, "email": m.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", m.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendBookingEmail dispatches a booking notification without blocking the
// caller. Errors are logged and swallowed.
func (m *Mailer) SendBookingEmail(user models.User, booking models.Booking, subject, intro string) {
	body := fmt.Sprintf(
		"<h1>%s</h1><p>Dear %s,</p><p>%s</p>"+
			"<p><b>Reference:</b> %s<br><b>Table:</b> %d<br><b>Date:</b> %s<br>"+
			"<b>Time:</b> %s-%s<br><b>Guests:</b> %d</p>"+
			"<p>%s<br>%s<br>%s</p>",
		subject, user.Name, intro,
		booking.Reference, booking.Table.Number, booking.Date,
		booking.StartTime, booking.EndTime, booking.GuestsCount,
		m.Restaurant.Name, m.Restaurant.Address, m.Restaurant.ContactPhone,
	)

	go func() {
		if err := m.Send(user.Email, user.Name, subject, body); err != nil {
			utils.ErrorLogger.Printf("Failed to send booking email %q to %s: %v", subject, user.Email, err)
		}
	}()
}

// SendRegistrationEmail greets a freshly registered user. Best effort.
func (m *Mailer) SendRegistrationEmail(user models.User) {
	subject := fmt.Sprintf("Welcome to %s", m.Restaurant.Name)
	body := fmt.Sprintf(
		"<h1>Welcome, %s!</h1><p>Your account at %s is ready. "+
			"You can now book a table online.</p><p>%s<br>%s</p>",
		user.Name, m.Restaurant.Name, m.Restaurant.Address, m.Restaurant.ContactPhone,
	)

	go func() {
		if err := m.Send(user.Email, user.Name, subject, body); err != nil {
			utils.ErrorLogger.Printf("Failed to send registration email to %s: %v", user.Email, err)
		}
	}()
}
