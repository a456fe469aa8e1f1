package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazz-dev/instprobe/internal/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "instprobe",
		Short:        "Probe public search instances and send status notifications",
		SilenceUsage: true,
	}

	root.AddCommand(versionCmd())
	root.AddCommand(probeCmd())
	root.AddCommand(notifyCmd())

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("instprobe %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
