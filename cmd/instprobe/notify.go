package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hazz-dev/instprobe/internal/notify"
)

const defaultMessage = "Instance status update"

func notifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notify [message]",
		Short: "Send a status message through Telegram and Pushbullet",
		Long: "Attempts every configured channel exactly once and prints a status\n" +
			"line for each. Exits 0 if at least one channel delivered, 1 if all\n" +
			"channels failed or were skipped for missing credentials.",
		Args: cobra.MaximumNArgs(1),
		RunE: runNotify,
	}
}

func runNotify(cmd *cobra.Command, args []string) error {
	message := defaultMessage
	if len(args) > 0 {
		message = args[0]
	}
	return executeNotify(cmd.Context(), cmd.OutOrStdout(), message,
		notify.TelegramFromEnv(),
		notify.PushbulletFromEnv(),
	)
}

func executeNotify(ctx context.Context, out io.Writer, message string, channels ...notify.Channel) error {
	if notify.Send(ctx, out, message, channels...) == 0 {
		return fmt.Errorf("all notification channels failed")
	}
	return nil
}
