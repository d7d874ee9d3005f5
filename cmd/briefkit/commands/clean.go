package commands

import (
	"github.com/brieflab/briefkit/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached results and job working directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cacheOnly, _ := cmd.Flags().GetBool("cache")
			workOnly, _ := cmd.Flags().GetBool("work")

			opts := app.CleanOptions{Cache: cacheOnly, Work: workOnly}
			if !cacheOnly && !workOnly {
				// Bare clean removes everything.
				opts = app.CleanOptions{Cache: true, Work: true}
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool("cache", false, "Remove only the result cache")
	cmd.Flags().Bool("work", false, "Remove only the job working directories")
	return cmd
}
