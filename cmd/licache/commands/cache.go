package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/licache/internal/app"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache license records for every configured dependency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			force, _ := cmd.Flags().GetBool("force")
			parallel, _ := cmd.Flags().GetInt("parallel")

			_, err := c.app.Cache(cmd.Context(), app.CacheOptions{
				ConfigPath:  configPath,
				Force:       force,
				Parallelism: parallel,
			})
			return err
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Regenerate records even when their version is unchanged")
	cmd.Flags().Int("parallel", 1, "Number of sources reconciled concurrently")

	return cmd
}
