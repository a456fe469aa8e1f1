package notify_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hazz-dev/instprobe/internal/notify"
)

// stubChannel records whether it was attempted and returns a fixed error.
type stubChannel struct {
	name      string
	err       error
	attempted bool
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(ctx context.Context, message string) error {
	s.attempted = true
	return s.err
}

func TestSend_AllChannelsAttempted(t *testing.T) {
	first := &stubChannel{name: "first", err: errors.New("boom")}
	second := &stubChannel{name: "second"}

	var buf bytes.Buffer
	sent := notify.Send(context.Background(), &buf, "hello", first, second)

	if !first.attempted || !second.attempted {
		t.Error("expected both channels to be attempted")
	}
	if sent != 1 {
		t.Errorf("expected 1 successful channel, got %d", sent)
	}
}

func TestSend_StatusLines(t *testing.T) {
	ok := &stubChannel{name: "ok-channel"}
	failed := &stubChannel{name: "bad-channel", err: errors.New("boom")}
	skipped := &stubChannel{name: "bare-channel", err: fmt.Errorf("%w: nothing set", notify.ErrNotConfigured)}

	var buf bytes.Buffer
	notify.Send(context.Background(), &buf, "hello", ok, failed, skipped)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 status lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ok-channel: sent") {
		t.Errorf("unexpected success line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "bad-channel: failed") {
		t.Errorf("unexpected failure line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "bare-channel: skipped") {
		t.Errorf("unexpected skip line %q", lines[2])
	}
}

func TestSend_AllFail(t *testing.T) {
	var buf bytes.Buffer
	sent := notify.Send(context.Background(), &buf, "hello",
		&stubChannel{name: "a", err: errors.New("boom")},
		&stubChannel{name: "b", err: fmt.Errorf("%w: nothing set", notify.ErrNotConfigured)},
	)
	if sent != 0 {
		t.Errorf("expected 0 successes, got %d", sent)
	}
}

func TestSend_MissingTelegramEnv_PushbulletStillAttempted(t *testing.T) {
	t.Setenv("TG_BOT_TOKEN", "")
	t.Setenv("TG_CHAT_ID", "42")
	t.Setenv("PUSHBULLET_API_KEY", "key")

	var pushed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pushed = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pb := notify.PushbulletFromEnv()
	pb.BaseURL = srv.URL

	var buf bytes.Buffer
	sent := notify.Send(context.Background(), &buf, "hello", notify.TelegramFromEnv(), pb)

	if !pushed {
		t.Error("expected Pushbullet to be attempted when Telegram is skipped")
	}
	if sent != 1 {
		t.Errorf("expected 1 success, got %d", sent)
	}
	if !strings.Contains(buf.String(), "telegram: skipped") {
		t.Errorf("expected telegram skip line, got:\n%s", buf.String())
	}
}
