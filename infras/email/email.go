package email

//go:generate go run go.uber.org/mock/mockgen -source=./email.go -destination=./mocks/email_mock.go -package=mocks

import (
	"context"
	"errors"
	"strings"

	"bookly/config"
	"bookly/infras/otel"

	"github.com/rs/zerolog/log"
)

const (
	ProviderSMTP     = "smtp"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"

	otelAttrProvider  = "provider"
	otelAttrRecipient = "recipient"
)

var (
	ErrNoRecipient   = errors.New("email recipient is empty")
)

// Message is one outgoing email. HTML is required; Text is the optional plain part.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
	Provider() string
}

type sender struct {
	fromEmail string
	fromName  string
	otel      otel.Otel
}

// New selects the provider named by NOTIFICATION_EMAIL_PROVIDER. A provider whose
// credentials are missing falls back to the stub so the worker still records attempts.
func New(cfg *config.Config, otel otel.Otel) Sender {
	base := sender{
		fromEmail: cfg.Notification.FromEmail,
		fromName:  cfg.Notification.FromName,
		otel:      otel,
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Notification.EmailProvider))

	switch provider {
	case ProviderSMTP:
		if cfg.External.SMTP.Host != "" {
			return newSMTPSender(base, cfg.External.SMTP.Host, cfg.External.SMTP.Port, cfg.External.SMTP.Username, cfg.External.SMTP.Password)
		}
	case ProviderSendGrid:
		if cfg.External.SendGrid.APIKey != "" {
			return newSendGridSender(base, cfg.External.SendGrid.APIKey)
		}
	case ProviderSES:
		ses, err := newSESSender(base, cfg.External.SES.Region)
		if err == nil {
			return ses
		}

		log.Error().Err(err).Msg("failed to initialise SES sender")
	case ProviderStub, "":
		return newStubSender(base)
	}

	log.Warn().Str("provider", provider).Msg("email provider is not configured, using stub sender")

	return newStubSender(base)
}

func (s sender) from() string {
	if s.fromName == "" {
		return s.fromEmail
	}

	return s.fromName + " <" + s.fromEmail + ">"
}
