package cli

import (
	"encoding/json"
	"fmt"

	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/spf13/cobra"
)

var prefOverrides bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Print the resolved study setup",
	Long: `Print the study setup as JSON, with allowEnroll and testing resolved.

On first run the data permissions source is queried and the answer is
cached; later runs reuse the cached answer.

Examples:
  shield-study setup
  shield-study setup --permissions prompt
  shield-study setup --pref-overrides --study study.yaml`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&prefOverrides, "pref-overrides", false, "fill testing overrides from stored prefs")
	rootCmd.Flags().AddFlagSet(setupCmd.Flags())
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return withBuilder(prefOverrides, func(b *study.Builder, _ *store.SQLiteStore) error {
		setup, err := b.StudySetup(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build study setup: %w", err)
		}

		data, err := json.MarshalIndent(setup, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal study setup: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	})
}
