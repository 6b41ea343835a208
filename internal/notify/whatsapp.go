package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const DefaultWhatsAppAPIURL = "https://graph.facebook.com/v19.0"

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppSender posts text messages through the WhatsApp Business Cloud API.
type WhatsAppSender struct {
	baseURL string
	phoneID string
	token   string
	http    *http.Client
}

func NewWhatsAppSender(baseURL, phoneID, token string) *WhatsAppSender {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultWhatsAppAPIURL
	}
	return &WhatsAppSender{
		baseURL: baseURL,
		phoneID: strings.TrimSpace(phoneID),
		token:   strings.TrimSpace(token),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *WhatsAppSender) Channel() string { return ChannelWhatsApp }

type waText struct {
	PreviewURL bool   `json:"preview_url"`
	Body       string `json:"body"`
}

type waMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             waText `json:"text"`
}

// Send ignores subject; WhatsApp text messages have none.
func (s *WhatsAppSender) Send(ctx context.Context, to, _, body string) error {
	if s.phoneID == "" || s.token == "" {
		return ErrNotConfigured
	}
	number := NormalizePhone(to)
	if number == "" {
		return fmt.Errorf("whatsapp: invalid recipient %q", to)
	}

	raw, err := json.Marshal(waMessage{
		MessagingProduct: "whatsapp",
		To:               number,
		Type:             "text",
		Text:             waText{Body: body},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// NormalizePhone strips formatting and prefixes the Brazilian country code
// when the number is a bare DDD + subscriber number.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return ""
	}
	if (len(digits) == 10 || len(digits) == 11) && !strings.HasPrefix(digits, "55") {
		digits = "55" + digits
	}
	return digits
}
