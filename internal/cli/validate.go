package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the study definition",
	Long: `Load the study definition and check it against the framework's
requirements: non-empty positive variation weights, standard endings
present, and a positive expiry.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate only prints; loading and validation happen in PersistentPreRunE.
func runValidate(cmd *cobra.Command, args []string) error {
	total := 0.0
	for _, v := range base.WeightedVariations {
		total += v.Weight
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIATION\tWEIGHT\tSHARE")
	for _, v := range base.WeightedVariations {
		fmt.Fprintf(w, "%s\t%g\t%.1f%%\n", v.Name, v.Weight, 100*v.Weight/total)
	}
	w.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %d endings, expires after %d days. OK\n",
		base.ActiveExperimentName, len(base.Endings), base.Expire.Days)
	return nil
}
