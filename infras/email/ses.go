package email

import (
	"context"
	"fmt"

	"bookly/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

const charsetUTF8 = "UTF-8"

type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	sender
	client sesClient
}

func newSESSender(base sender, region string) (*sesSender, error) {
	opts := []func(*awsConfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsConfig.WithRegion(region))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &sesSender{sender: base, client: sesv2.NewFromConfig(cfg)}, nil
}

func (s *sesSender) Provider() string {
	return ProviderSES
}

func (s *sesSender) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEmailScopeName, constant.OtelEmailScopeName+".SES.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if msg.To == "" {
		return ErrNoRecipient
	}

	scope.SetAttributes(map[string]any{otelAttrProvider: ProviderSES, otelAttrRecipient: msg.To})

	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charsetUTF8)},
	}

	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String(charsetUTF8)}
	}

	output, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from()),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body:    body,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("failed to send email via SES")

		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	log.Debug().Str("message_id", aws.ToString(output.MessageId)).Msg("email sent via SES")

	return nil
}
