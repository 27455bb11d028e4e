package cli

import (
	"fmt"
	"os"

	"github.com/gkobilansky/shield-study/internal/config"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/spf13/cobra"
)

const defaultStudyFile = "study.yaml"

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the example study definition",
	Long: `Write the built-in example study as YAML so it can be edited.

The file goes to --study, or ./study.yaml when --study is not set.
Existing files are kept unless --force is given.

Example:
  shield-study init --study study.yaml
  shield-study validate --study study.yaml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing study file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := studyFile
	if path == "" {
		path = defaultStudyFile
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveStudy(path, study.Base(extensionID)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "Next:")
	fmt.Fprintf(cmd.OutOrStdout(), "  shield-study validate --study %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "  shield-study setup --study %s\n", path)
	return nil
}
