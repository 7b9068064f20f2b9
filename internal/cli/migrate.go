package cli

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, logger, err := bootstrap(cmd.Context(), rootOpts, false)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			defer a.Close()
			return a.Migrate(cmd.Context())
		},
	}
}
