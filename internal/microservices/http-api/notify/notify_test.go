package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier_Send(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := n.Send(context.Background(), Message{
		Subject: "Confirmation code",
		Body:    "abc123",
		From:    "noreply@test",
		To:      []string{"user@test"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "user@test")
}

func TestLogNotifier_NoRecipients(t *testing.T) {
	n := NewLogNotifier(slog.Default())
	assert.ErrorIs(t, n.Send(context.Background(), Message{}), ErrNoRecipients)
}

func TestSMTPNotifier_Send(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "mail.test", Port: 2525})

	var gotAddr string
	var gotBody []byte
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotBody = msg
		assert.Equal(t, "noreply@test", from)
		assert.Equal(t, []string{"user@test"}, to)
		return nil
	}

	err := n.Send(context.Background(), Message{
		Subject: "Confirmation code",
		Body:    "abc123",
		From:    "noreply@test",
		To:      []string{"user@test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "mail.test:2525", gotAddr)
	assert.Contains(t, string(gotBody), "Subject: Confirmation code\r\n")
	assert.Contains(t, string(gotBody), "abc123")
}

func TestSMTPNotifier_PropagatesFailure(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "mail.test", Port: 25})
	relayErr := errors.New("connection refused")
	n.send = func(string, smtp.Auth, string, []string, []byte) error { return relayErr }

	err := n.Send(context.Background(), Message{From: "a@test", To: []string{"b@test"}})
	assert.ErrorIs(t, err, relayErr)
}
