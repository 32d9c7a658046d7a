package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/mufasadev/easypay-receipts/internal/config"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

const smtpsPort = 465

var ErrMissingCredentials = errors.New("smtp username and password are required")

// SMTPTransport submits receipts through an authenticated SMTP relay.
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	fromName string
	timeout  time.Duration
	logger   *zerolog.Logger
}

func NewSMTPTransport(cfg config.SMTP) (*SMTPTransport, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}

	l := log.GetLogger()
	t := &SMTPTransport{
		host:     cfg.Host,
		port:     cfg.PortNumber(),
		username: cfg.Username,
		password: cfg.Password,
		fromName: cfg.FromName,
		timeout:  cfg.DialTimeout(),
		logger:   &l,
	}

	// client options and sender address are checked up front
	if _, err := t.client(); err != nil {
		return nil, err
	}
	if _, _, err := t.buildMessage(receipt.Message{To: cfg.Username}); err != nil {
		return nil, err
	}

	return t, nil
}

// Deliver opens one connection per message and returns the Message-ID header value.
func (t *SMTPTransport) Deliver(ctx context.Context, msg receipt.Message) (string, error) {
	m, messageID, err := t.buildMessage(msg)
	if err != nil {
		return "", apperrors.NewTransportError(msg.To, err)
	}

	c, err := t.client()
	if err != nil {
		return "", apperrors.NewTransportError(msg.To, err)
	}

	start := time.Now()
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return "", apperrors.NewTransportError(msg.To, err)
	}

	t.logger.Debug().
		Str("host", t.host).
		Int("port", t.port).
		Str("message_id", messageID).
		Dur("duration", time.Since(start)).
		Msg("smtp submission accepted")

	return messageID, nil
}

func (t *SMTPTransport) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(t.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.username),
		mail.WithPassword(t.password),
		mail.WithTimeout(t.timeout),
	}
	if t.port == smtpsPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return mail.NewClient(t.host, opts...)
}

// buildMessage assembles the MIME message and returns it with its Message-ID.
func (t *SMTPTransport) buildMessage(msg receipt.Message) (*mail.Msg, string, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(t.fromName, t.username); err != nil {
		return nil, "", fmt.Errorf("sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, "", fmt.Errorf("recipient: %w", err)
	}

	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), senderDomain(t.username, t.host))
	m.SetMessageIDWithValue(messageID)
	m.SetDate()
	m.Subject(msg.Subject)

	if msg.PlainBody != "" {
		m.SetBodyString(mail.TypeTextPlain, msg.PlainBody)
		if msg.HTMLBody != "" {
			m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
		}
	} else {
		m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	}

	for _, a := range msg.Attachments {
		m.AttachReadSeeker(a.Filename, bytes.NewReader(a.Content),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
	}

	return m, "<" + messageID + ">", nil
}

func senderDomain(address, fallback string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return fallback
}
