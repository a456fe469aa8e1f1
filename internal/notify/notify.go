// Package notify delivers status messages through outbound webhook-style
// channels (Telegram, Pushbullet). Credentials come from environment
// variables read at call time; a channel with no credentials is skipped
// rather than treated as a fault.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const sendTimeout = 20 * time.Second

// ErrNotConfigured reports that a channel's credentials are absent or blank.
var ErrNotConfigured = errors.New("channel not configured")

// Channel is a single notification delivery mechanism.
type Channel interface {
	Name() string
	Send(ctx context.Context, message string) error
}

// Send attempts delivery of message through every channel, in order,
// printing one human-readable status line per channel to out. Every
// channel is attempted exactly once regardless of earlier failures, and
// channel errors never propagate. It returns the number of channels that
// delivered successfully.
func Send(ctx context.Context, out io.Writer, message string, channels ...Channel) int {
	sent := 0
	for _, ch := range channels {
		err := ch.Send(ctx, message)
		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: sent\n", ch.Name())
			sent++
		case errors.Is(err, ErrNotConfigured):
			fmt.Fprintf(out, "%s: skipped (%v)\n", ch.Name(), err)
		default:
			fmt.Fprintf(out, "%s: failed (%v)\n", ch.Name(), err)
		}
	}
	return sent
}

// envValue returns the named environment variable with surrounding
// whitespace trimmed, so a blank value counts as unset.
func envValue(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
