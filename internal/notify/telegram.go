package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Telegram delivers messages through the Telegram Bot API sendMessage
// endpoint. BaseURL and Client exist so tests can point the channel at a
// local server; zero values mean the public API with a 20s timeout.
type Telegram struct {
	Token   string
	ChatID  string
	BaseURL string
	Client  *http.Client
}

// TelegramFromEnv builds a Telegram channel from TG_BOT_TOKEN and
// TG_CHAT_ID. Missing credentials are detected at Send time.
func TelegramFromEnv() *Telegram {
	return &Telegram{
		Token:  envValue("TG_BOT_TOKEN"),
		ChatID: envValue("TG_CHAT_ID"),
	}
}

func (t *Telegram) Name() string { return "telegram" }

// Send posts a form-encoded sendMessage request. Success is HTTP 200.
func (t *Telegram) Send(ctx context.Context, message string) error {
	if t.Token == "" || t.ChatID == "" {
		return fmt.Errorf("%w: TG_BOT_TOKEN or TG_CHAT_ID not set", ErrNotConfigured)
	}

	base := t.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: sendTimeout}
	}

	form := url.Values{
		"chat_id": {t.ChatID},
		"text":    {message},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/bot%s/sendMessage", base, t.Token),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
