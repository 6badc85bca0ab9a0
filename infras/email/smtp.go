package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"bookly/shared/constant"

	"github.com/rs/zerolog/log"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpSender struct {
	sender
	addr     string
	auth     smtp.Auth
	sendMail sendMailFunc
}

func newSMTPSender(base sender, host, port, username, password string) *smtpSender {
	if port == "" {
		port = "587"
	}

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &smtpSender{
		sender:   base,
		addr:     net.JoinHostPort(host, port),
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

func (s *smtpSender) Provider() string {
	return ProviderSMTP
}

func (s *smtpSender) Send(ctx context.Context, msg Message) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelEmailScopeName, constant.OtelEmailScopeName+".SMTP.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if msg.To == "" {
		return ErrNoRecipient
	}

	scope.SetAttributes(map[string]any{otelAttrProvider: ProviderSMTP, otelAttrRecipient: msg.To})

	if err = s.sendMail(s.addr, s.auth, s.fromEmail, []string{msg.To}, buildMIME(s.from(), msg)); err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("failed to send email via SMTP")

		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}

func buildMIME(from string, msg Message) []byte {
	to := msg.To
	if msg.ToName != "" {
		to = msg.ToName + " <" + msg.To + ">"
	}

	var b strings.Builder

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	return []byte(b.String())
}
