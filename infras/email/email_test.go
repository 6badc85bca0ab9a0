package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/config"
	"bookly/infras/otel/mocks"
)

func testSender() sender {
	return sender{fromEmail: "noreply@bookly.test", fromName: "Bookly", otel: mocks.NewOtel()}
}

func confirmation() Message {
	return Message{To: "maria@example.com", ToName: "Maria", Subject: "Appointment confirmed", HTML: "<p>See you soon</p>"}
}

func TestNew_SelectsProvider(t *testing.T) {
	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		want      string
	}{
		{name: "stub by default", configure: func(*config.Config) {}, want: ProviderStub},
		{
			name: "smtp with host",
			configure: func(cfg *config.Config) {
				cfg.Notification.EmailProvider = "SMTP"
				cfg.External.SMTP.Host = "localhost"
			},
			want: ProviderSMTP,
		},
		{
			name:      "smtp without host falls back",
			configure: func(cfg *config.Config) { cfg.Notification.EmailProvider = ProviderSMTP },
			want:      ProviderStub,
		},
		{
			name: "sendgrid with key",
			configure: func(cfg *config.Config) {
				cfg.Notification.EmailProvider = ProviderSendGrid
				cfg.External.SendGrid.APIKey = "SG.test"
			},
			want: ProviderSendGrid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.configure(cfg)

			assert.Equal(t, tt.want, New(cfg, mocks.NewOtel()).Provider())
		})
	}
}

func TestSMTPSender_Send(t *testing.T) {
	s := newSMTPSender(testSender(), "mail.example.com", "", "user", "secret")

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)

	s.sendMail = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)

		return nil
	}

	require.NoError(t, s.Send(context.Background(), confirmation()))

	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, []string{"maria@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "From: Bookly <noreply@bookly.test>\r\n")
	assert.Contains(t, gotMsg, "To: Maria <maria@example.com>\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html; charset=UTF-8")
	assert.True(t, strings.HasSuffix(gotMsg, "<p>See you soon</p>\r\n"))

	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	assert.Error(t, s.Send(context.Background(), confirmation()))
	assert.ErrorIs(t, s.Send(context.Background(), Message{Subject: "no one"}), ErrNoRecipient)
}

type fakeSendGrid struct {
	status int
	sent   *mail.SGMailV3
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = email

	return &rest.Response{StatusCode: f.status}, nil
}

func TestSendGridSender_Send(t *testing.T) {
	client := &fakeSendGrid{status: 202}
	s := &sendGridSender{sender: testSender(), client: client}

	require.NoError(t, s.Send(context.Background(), confirmation()))
	assert.Equal(t, "Appointment confirmed", client.sent.Subject)
	assert.Equal(t, "noreply@bookly.test", client.sent.From.Address)

	client.status = 401
	assert.Error(t, s.Send(context.Background(), confirmation()))
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params

	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, f.err
}

func TestSESSender_Send(t *testing.T) {
	client := &fakeSES{}
	s := &sesSender{sender: testSender(), client: client}

	require.NoError(t, s.Send(context.Background(), confirmation()))
	assert.Equal(t, "Bookly <noreply@bookly.test>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"maria@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>See you soon</p>", aws.ToString(client.input.Content.Simple.Body.Html.Data))
	assert.Nil(t, client.input.Content.Simple.Body.Text)

	client.err = errors.New("throttled")
	assert.Error(t, s.Send(context.Background(), confirmation()))
}

func TestStubSender_Send(t *testing.T) {
	s := newStubSender(testSender())

	assert.NoError(t, s.Send(context.Background(), confirmation()))
	assert.ErrorIs(t, s.Send(context.Background(), Message{}), ErrNoRecipient)
}
