package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// HealthResult is the health endpoint response plus what the CLI measured
type HealthResult struct {
	Status  string        `json:"status"`
	Server  string        `json:"server"`
	Latency time.Duration `json:"latency_ns"`
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			start := time.Now()
			if err := client.Get("/api/v1/health", &result); err != nil {
				return err
			}
			result.Latency = time.Since(start)
			result.Server = cfg.ServerURL

			return NewOutputTo(cfg.Output, cmd.OutOrStdout()).Print(result)
		},
	}
}
