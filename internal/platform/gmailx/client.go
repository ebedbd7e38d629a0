// Package gmailx sends notification mail through the Gmail API on
// behalf of the authenticated user.
package gmailx

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Client struct {
	log   *logger.Logger
	gmail *gmail.Service
}

func New(ctx context.Context, log *logger.Logger, accessToken string) (*Client, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("access token required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return &Client{
		log:   log.With("service", "GmailClient"),
		gmail: svc,
	}, nil
}

// Send delivers msg as the token's owner. A missing subject defaults to
// the first line of the body.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if strings.TrimSpace(msg.To) == "" {
		return "", fmt.Errorf("recipient required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		msg.Subject = firstLine(msg.Body)
	}

	profile, err := c.gmail.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("get gmail profile: %w", err)
	}

	raw := encodeMessage(profile.EmailAddress, msg.To, msg.Subject, msg.Body)
	sent, err := c.gmail.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	c.log.Info("Email sent", "to", msg.To, "messageId", sent.Id)
	return sent.Id, nil
}

func encodeMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString([]byte(b.String()))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
