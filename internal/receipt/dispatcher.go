package receipt

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

const ContentTypePDF = "application/pdf"

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outbound receipt email, independent of the transport.
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	PlainBody   string
	Attachments []Attachment
}

// Transport delivers a message and returns the identifier it was sent under.
type Transport interface {
	Deliver(ctx context.Context, msg Message) (string, error)
}

// Delivery is the outcome of a successful Send.
type Delivery struct {
	MessageID string
	Reference string
	Recipient string
}

// Dispatcher renders a receipt and emails it to the payer.
type Dispatcher struct {
	renderer  *Renderer
	transport Transport
	logger    *zerolog.Logger
}

func NewDispatcher(renderer *Renderer, transport Transport) *Dispatcher {
	l := log.GetLogger()
	return &Dispatcher{renderer: renderer, transport: transport, logger: &l}
}

// Send renders tx and emails it, with the PDF attached, to tx.Email.
//
// Callers invoke Send only after a confirmed transition to
// models.StatusSuccessful or on an explicit resend; the status is not checked
// here. Each call sends exactly one email: there is no retry and no
// deduplication, so sending the same transaction twice delivers two emails.
func (d *Dispatcher) Send(ctx context.Context, tx models.Transaction) (Delivery, error) {
	if err := Validate(tx); err != nil {
		return Delivery{}, err
	}

	start := time.Now()
	pdf, err := d.renderer.Render(tx)
	if err != nil {
		return Delivery{}, err
	}
	html, err := d.renderer.composeHTML(tx)
	if err != nil {
		return Delivery{}, apperrors.NewRenderError("email body", err)
	}

	msg := Message{
		To:        strings.TrimSpace(tx.Email),
		Subject:   Subject(tx.Reference),
		HTMLBody:  html,
		PlainBody: d.renderer.composePlain(tx),
		Attachments: []Attachment{{
			Filename:    AttachmentName(tx.Reference),
			ContentType: ContentTypePDF,
			Content:     pdf,
		}},
	}

	messageID, err := d.transport.Deliver(ctx, msg)
	if err != nil {
		var transportErr *apperrors.TransportError
		if !apperrors.As(err, &transportErr) {
			err = apperrors.NewTransportError(msg.To, err)
		}
		d.logger.Error().Err(err).
			Str("reference", tx.Reference).
			Str("recipient", msg.To).
			Dur("duration", time.Since(start)).
			Msg(apperrors.ErrFailedSendReceipt)
		return Delivery{}, err
	}

	d.logger.Info().
		Str("reference", tx.Reference).
		Str("recipient", msg.To).
		Str("message_id", messageID).
		Dur("duration", time.Since(start)).
		Msg("receipt sent")

	return Delivery{MessageID: messageID, Reference: tx.Reference, Recipient: msg.To}, nil
}

// Validate rejects records that cannot produce an addressable receipt at all.
func Validate(tx models.Transaction) error {
	if strings.TrimSpace(tx.Reference) == "" {
		return apperrors.NewBadRequestError(apperrors.ErrReferenceRequired)
	}
	if strings.TrimSpace(tx.Email) == "" {
		return apperrors.NewBadRequestError(apperrors.ErrEmailRequired)
	}
	return nil
}
