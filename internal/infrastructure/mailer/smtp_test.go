package mailer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mufasadev/easypay-receipts/internal/config"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/internal/receipt"
)

func testConfig() config.SMTP {
	return config.SMTP{
		Host:     "127.0.0.1",
		Port:     "1",
		Username: "receipts@easypay.test",
		Password: "secret",
		FromName: "EasyPay",
		Timeout:  "1s",
	}
}

func testMessage() receipt.Message {
	return receipt.Message{
		To:        "a@b.com",
		Subject:   receipt.Subject("TXN-001"),
		HTMLBody:  "<p>receipt</p>",
		PlainBody: "receipt",
		Attachments: []receipt.Attachment{{
			Filename:    receipt.AttachmentName("TXN-001"),
			ContentType: receipt.ContentTypePDF,
			Content:     []byte("%PDF-1.3 test"),
		}},
	}
}

func TestNewSMTPTransportRequiresCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Password = ""

	_, err := NewSMTPTransport(cfg)
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestBuildMessage(t *testing.T) {
	transport, err := NewSMTPTransport(testConfig())
	require.NoError(t, err)

	m, messageID, err := transport.buildMessage(testMessage())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(messageID, "<"))
	assert.True(t, strings.HasSuffix(messageID, "@easypay.test>"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Payment Receipt - TXN-001")
	assert.Contains(t, raw, `"EasyPay" <receipts@easypay.test>`)
	assert.Contains(t, raw, "<a@b.com>")
	assert.Contains(t, raw, messageID)
	assert.Contains(t, raw, "Receipt-TXN-001.pdf")
	assert.Contains(t, raw, "application/pdf")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "text/plain")
}

func TestBuildMessageUniqueIDs(t *testing.T) {
	transport, err := NewSMTPTransport(testConfig())
	require.NoError(t, err)

	_, first, err := transport.buildMessage(testMessage())
	require.NoError(t, err)
	_, second, err := transport.buildMessage(testMessage())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBuildMessageRejectsBadRecipient(t *testing.T) {
	transport, err := NewSMTPTransport(testConfig())
	require.NoError(t, err)

	msg := testMessage()
	msg.To = "not an address"
	_, _, err = transport.buildMessage(msg)
	assert.Error(t, err)
}

func TestDeliverUnreachableServer(t *testing.T) {
	transport, err := NewSMTPTransport(testConfig())
	require.NoError(t, err)

	_, err = transport.Deliver(context.Background(), testMessage())
	require.Error(t, err)

	var transportErr *apperrors.TransportError
	require.True(t, apperrors.As(err, &transportErr))
	assert.Equal(t, "a@b.com", transportErr.Recipient)
}

func TestSenderDomain(t *testing.T) {
	assert.Equal(t, "easypay.test", senderDomain("receipts@easypay.test", "smtp.gmail.com"))
	assert.Equal(t, "smtp.gmail.com", senderDomain("receipts", "smtp.gmail.com"))
	assert.Equal(t, "smtp.gmail.com", senderDomain("receipts@", "smtp.gmail.com"))
}
