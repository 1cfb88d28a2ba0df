package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tweetstream/webfront/internal/probe"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe a running server's health endpoint",
	Long:  "GET /health on a running server and verify the response. Exits non-zero when the server is not healthy, so it can back a container HEALTHCHECK.",
	RunE:  runCheck,
}

var (
	checkAddr    string
	checkTimeout time.Duration
)

func init() {
	checkCmd.Flags().StringVar(&checkAddr, "addr", "127.0.0.1:8080", "Server address to probe")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Second, "Probe timeout")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	err := probe.Check(cmd.Context(), probe.Config{
		Type:    "http",
		Addr:    checkAddr,
		Path:    "/health",
		Body:    "healthy",
		Timeout: checkTimeout,
	})
	if err != nil {
		return fmt.Errorf("unhealthy: %w", err)
	}

	fmt.Println("healthy")
	return nil
}
