// Package smtp sends rendered emails through an authenticated SMTP relay.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/csg33k/approval-form/internal/domain"
)

// Config holds the relay credential pair and endpoint.
type Config struct {
	Host     string
	Port     int
	Username string // also used as the From address
	Password string
	FromName string
	Timeout  time.Duration
}

// Mailer is a ports.Mailer backed by go-mail.
type Mailer struct {
	cfg    Config
	client *mail.Client
}

// New builds the client. No connection is made until Send.
func New(cfg Config) (*Mailer, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	c, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{cfg: cfg, client: c}, nil
}

// Send dials the relay and delivers e. Each call opens its own connection.
func (m *Mailer) Send(ctx context.Context, e domain.Email) error {
	msg, err := BuildMessage(m.cfg.Username, m.cfg.FromName, e)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send to %s: %w", e.To, err)
	}
	return nil
}

// BuildMessage converts e into a MIME message: HTML body, optional plain-text
// alternative, and every attachment.
func BuildMessage(from, fromName string, e domain.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if fromName != "" {
		if err := msg.FromFormat(fromName, from); err != nil {
			return nil, fmt.Errorf("from address: %w", err)
		}
	} else if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(e.To); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(e.Subject)
	msg.SetDate()
	msg.SetMessageID()

	msg.SetBodyString(mail.TypeTextHTML, e.HTMLBody)
	if e.TextBody != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, e.TextBody)
	}

	for _, a := range e.Attachments {
		err := msg.AttachReader(a.Filename, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}
	return msg, nil
}
