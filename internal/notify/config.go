package notify

import "github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/config"

const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
)

// FromConfig returns one sender per channel. A channel without credentials
// gets a NoopSender.
func FromConfig(cfg *config.Config) []Sender {
	senders := make([]Sender, 0, 2)
	if cfg.WhatsAppPhoneID != "" && cfg.WhatsAppToken != "" {
		senders = append(senders, NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneID, cfg.WhatsAppToken))
	} else {
		senders = append(senders, NewNoopSender(ChannelWhatsApp))
	}
	if cfg.SMTPHost != "" && cfg.SMTPFrom != "" {
		senders = append(senders, NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom))
	} else {
		senders = append(senders, NewNoopSender(ChannelEmail))
	}
	return senders
}
