package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "List local storage and prefs",
	Long:  `List everything the study has written to local storage, and all stored prefs.`,
	RunE:  runStorage,
}

func init() {
	rootCmd.AddCommand(storageCmd)
}

func runStorage(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		ctx := cmd.Context()

		items, err := s.ListItems(ctx)
		if err != nil {
			return err
		}
		prefs, err := s.ListPrefs(ctx)
		if err != nil {
			return err
		}

		if len(items) == 0 && len(prefs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing stored yet.")
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "The enrollment decision is cached on first run:")
			fmt.Fprintln(cmd.OutOrStdout(), "  shield-study enroll")
			return nil
		}

		// Print table
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tKEY\tVALUE\tUPDATED")

		for _, item := range items {
			fmt.Fprintf(w, "storage\t%s\t%s\t%s\n", item.Key, string(item.Value), item.UpdatedAt.Format("2006-01-02 15:04"))
		}
		for _, p := range prefs {
			fmt.Fprintf(w, "pref\t%s\t%s\t%s\n", p.Name, p.Value, p.UpdatedAt.Format("2006-01-02 15:04"))
		}

		w.Flush()
		return nil
	})
}
