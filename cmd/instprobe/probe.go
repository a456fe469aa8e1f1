package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazz-dev/instprobe/internal/prober"
)

const defaultListPath = "tmp/instances.txt"

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe [path]",
		Short: "Check each instance in a URL list for liveness and latency",
		Long: "Reads newline-separated base URLs from path (default " + defaultListPath + "),\n" +
			"probes each one once in file order, and writes one JSON record per URL\n" +
			"followed by a comma-joined list of the working instances.",
		Args: cobra.MaximumNArgs(1),
		RunE: runProbe,
	}
}

func runProbe(cmd *cobra.Command, args []string) error {
	path := defaultListPath
	if len(args) > 0 {
		path = args[0]
	}
	return executeProbe(cmd.Context(), path, cmd.OutOrStdout())
}

func executeProbe(ctx context.Context, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening instance list: %w", err)
	}
	defer f.Close()

	_, err = prober.New(nil).Run(ctx, f, out)
	return err
}
