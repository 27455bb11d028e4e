package cli

import (
	"errors"
	"fmt"

	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/spf13/cobra"
)

func init() {
	prefCmd := &cobra.Command{
		Use:   "pref",
		Short: "Manage testing override prefs",
		Long: `Manage the prefs read by 'setup --pref-overrides'.

Override names:
  variation          force a variation instead of weighted sampling
  firstRunTimestamp  pretend the study first ran at this time

Examples:
  shield-study pref set variation control
  shield-study pref get variation
  shield-study pref unset variation`,
	}

	prefCmd.AddCommand(
		&cobra.Command{
			Use:   "set <override> <value>",
			Short: "Set a testing override",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := prefName(args[0])
				if err != nil {
					return err
				}
				if args[0] == "variation" && !hasVariation(args[1]) {
					return fmt.Errorf("unknown variation %q", args[1])
				}

				return withStore(func(s *store.SQLiteStore) error {
					if err := s.SetStringPref(cmd.Context(), name, args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "get <override>",
			Short: "Show a testing override",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := prefName(args[0])
				if err != nil {
					return err
				}

				return withStore(func(s *store.SQLiteStore) error {
					value, ok, err := s.GetStringPref(cmd.Context(), name)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", name)
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, value)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "unset <override>",
			Short: "Remove a testing override",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := prefName(args[0])
				if err != nil {
					return err
				}

				return withStore(func(s *store.SQLiteStore) error {
					err := s.ClearPref(cmd.Context(), name)
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf("%s is not set", name)
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s unset\n", name)
					return nil
				})
			},
		},
	)

	rootCmd.AddCommand(prefCmd)
}

func prefName(override string) (string, error) {
	names := study.PrefNamesFor(extensionID)
	switch override {
	case "variation":
		return names.Variation, nil
	case "firstRunTimestamp":
		return names.FirstRunTimestamp, nil
	default:
		return "", fmt.Errorf("unknown override %q (want variation or firstRunTimestamp)", override)
	}
}

func hasVariation(name string) bool {
	for _, v := range base.WeightedVariations {
		if v.Name == name {
			return true
		}
	}
	return false
}
