package cli

import (
	"fmt"

	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newEnrollCmd())
}

func newEnrollCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Show whether first-run enrollment is allowed",
		Long: `Show the enrollment decision, computing and caching it if needed.

Examples:
  shield-study enroll
  shield-study enroll --reset --permissions revoked`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBuilder(false, func(b *study.Builder, _ *store.SQLiteStore) error {
				ctx := cmd.Context()

				if reset {
					if err := b.ResetEnrollment(ctx); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Cached enrollment decision cleared.")
				}

				allowed, err := b.ShouldAllowEnroll(ctx)
				if err != nil {
					return fmt.Errorf("failed to resolve enrollment: %w", err)
				}

				if allowed {
					fmt.Fprintln(cmd.OutOrStdout(), "Enrollment allowed.")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Enrollment not allowed; the study will end with %q.\n", study.EndingIneligible)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "forget the cached decision and ask again")

	return cmd
}
