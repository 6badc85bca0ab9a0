package email

import (
	"context"
	"fmt"
	"net/http"

	"bookly/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridSender struct {
	sender
	client sendGridClient
}

func newSendGridSender(base sender, apiKey string) *sendGridSender {
	return &sendGridSender{sender: base, client: sendgrid.NewSendClient(apiKey)}
}

func (s *sendGridSender) Provider() string {
	return ProviderSendGrid
}

func (s *sendGridSender) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEmailScopeName, constant.OtelEmailScopeName+".SendGrid.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if msg.To == "" {
		return ErrNoRecipient
	}

	scope.SetAttributes(map[string]any{otelAttrProvider: ProviderSendGrid, otelAttrRecipient: msg.To})

	text := msg.Text
	if text == "" {
		text = msg.Subject
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		msg.Subject,
		mail.NewEmail(msg.ToName, msg.To),
		text,
		msg.HTML,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("failed to send email via SendGrid")

		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Msg("SendGrid rejected email")

		return fmt.Errorf("SendGrid returned status %d", response.StatusCode)
	}

	return nil
}
