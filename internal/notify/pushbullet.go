package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// pushTitle is the fixed title attached to every note-type push.
const pushTitle = "Instprobe Update"

// Pushbullet delivers messages as note-type pushes via the Pushbullet
// API. BaseURL and Client exist for tests; zero values mean the public
// API with a 20s timeout.
type Pushbullet struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// PushbulletFromEnv builds a Pushbullet channel from PUSHBULLET_API_KEY.
// A missing key is detected at Send time.
func PushbulletFromEnv() *Pushbullet {
	return &Pushbullet{APIKey: envValue("PUSHBULLET_API_KEY")}
}

func (p *Pushbullet) Name() string { return "pushbullet" }

type pushPayload struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send posts a JSON note push authenticated with the Access-Token
// header. Success is HTTP 200.
func (p *Pushbullet) Send(ctx context.Context, message string) error {
	if p.APIKey == "" {
		return fmt.Errorf("%w: PUSHBULLET_API_KEY not set", ErrNotConfigured)
	}

	base := p.BaseURL
	if base == "" {
		base = "https://api.pushbullet.com"
	}
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: sendTimeout}
	}

	body, err := json.Marshal(pushPayload{Type: "note", Title: pushTitle, Body: message})
	if err != nil {
		return fmt.Errorf("marshaling push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v2/pushes", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Access-Token", p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}
