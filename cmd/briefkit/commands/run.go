package commands

import (
	"strings"
	"time"

	"github.com/brieflab/briefkit/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "run [job]",
		Short:     "Run a report job (" + strings.Join(app.JobNames(), ", ") + ")",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: app.JobNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			resume, _ := cmd.Flags().GetBool("resume")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			lookback, _ := cmd.Flags().GetDuration("since")
			return c.app.Run(cmd.Context(), args[0], app.RunOptions{
				Resume:   resume,
				NoCache:  noCache,
				Lookback: lookback,
			})
		},
	}
	cmd.Flags().BoolP("resume", "r", false, "Resume after the last completed stage")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the result cache and refetch everything")
	cmd.Flags().Duration("since", 24*time.Hour, "How far back to collect activity")
	return cmd
}
