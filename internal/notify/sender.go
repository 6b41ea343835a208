// Package notify delivers report messages over WhatsApp and email.
package notify

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("notification channel not configured")

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
	Channel() string
}

// NoopSender stands in for a channel that has no credentials; every send fails
// with ErrNotConfigured so the schedule log records why nothing went out.
type NoopSender struct {
	channel string
}

func NewNoopSender(channel string) *NoopSender {
	return &NoopSender{channel: channel}
}

func (s *NoopSender) Channel() string { return s.channel }

func (s *NoopSender) Send(_ context.Context, _, _, _ string) error {
	return ErrNotConfigured
}
