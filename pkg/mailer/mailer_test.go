package mailer_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingdomchronicles/funnel/pkg/mailer"
)

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	valid := mailer.Message{
		To:       "ops@example.com",
		Subject:  "New VIP Reservation - Jane Doe",
		BodyHTML: "<p>details</p>",
		BodyText: "details",
	}

	tests := []struct {
		name    string
		mutate  func(*mailer.Message)
		wantErr bool
	}{
		{"valid", func(m *mailer.Message) {}, false},
		{"text body only", func(m *mailer.Message) { m.BodyHTML = "" }, false},
		{"empty to", func(m *mailer.Message) { m.To = "" }, true},
		{"invalid to", func(m *mailer.Message) { m.To = "not-an-email" }, true},
		{"empty subject", func(m *mailer.Message) { m.Subject = "  " }, true},
		{"no body at all", func(m *mailer.Message) { m.BodyHTML, m.BodyText = "", "" }, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := valid
			tt.mutate(&msg)
			err := msg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, mailer.ErrInvalidMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := mailer.NewDevSender(dir)

		err := sender.Send(context.Background(), mailer.Message{
			To:       "ops@example.com",
			Subject:  "New Email Subscription - jane@example.com",
			BodyHTML: "<p>hello</p>",
			BodyText: "hello",
			Tag:      "signup",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile, jsonFile string
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".html":
				htmlFile = e.Name()
			case ".json":
				jsonFile = e.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)
		assert.True(t, strings.Contains(htmlFile, "signup"))

		raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)

		var meta map[string]any
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "ops@example.com", meta["to"])
		assert.Equal(t, "signup", meta["tag"])
	})

	t.Run("rejects invalid message", func(t *testing.T) {
		t.Parallel()

		sender := mailer.NewDevSender(t.TempDir())
		err := sender.Send(context.Background(), mailer.Message{})
		assert.ErrorIs(t, err, mailer.ErrInvalidMessage)
	})
}

func TestNewPostmarkSender(t *testing.T) {
	t.Parallel()

	valid := mailer.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		ReplyToEmail:         "support@example.com",
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		s, err := mailer.NewPostmarkSender(valid)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	tests := []struct {
		name   string
		mutate func(*mailer.Config)
	}{
		{"missing server token", func(c *mailer.Config) { c.PostmarkServerToken = "" }},
		{"missing account token", func(c *mailer.Config) { c.PostmarkAccountToken = "" }},
		{"missing sender email", func(c *mailer.Config) { c.SenderEmail = "" }},
		{"invalid sender email", func(c *mailer.Config) { c.SenderEmail = "nope" }},
		{"invalid reply-to email", func(c *mailer.Config) { c.ReplyToEmail = "nope" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)
			_, err := mailer.NewPostmarkSender(cfg)
			assert.ErrorIs(t, err, mailer.ErrInvalidConfig)
		})
	}

	t.Run("MustNewPostmarkSender panics on invalid config", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			mailer.MustNewPostmarkSender(mailer.Config{})
		})
	})
}
