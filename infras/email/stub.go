package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

// stubSender logs instead of delivering. It is the default in development.
type stubSender struct {
	sender
}

func newStubSender(base sender) *stubSender {
	return &stubSender{sender: base}
}

func (s *stubSender) Provider() string {
	return ProviderStub
}

func (s *stubSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("stub email sender: email not delivered")

	return nil
}
