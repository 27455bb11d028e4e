package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Show the admin token of a running server",
	Long: `Show the admin token of a running server.

Use this when you've scrolled past the startup message.

Example:
  shield-study token
  curl -X POST -H "Authorization: Bearer $(shield-study token -q)" localhost:8080/admin/reset`,
	RunE: runToken,
}

var quietToken bool

func init() {
	tokenCmd.Flags().BoolVarP(&quietToken, "quiet", "q", false, "print only the token")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(getTokenFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no server running. Start with: shield-study serve")
		}
		return fmt.Errorf("failed to read token file: %w", err)
	}

	token := string(data)
	if token == "" {
		return fmt.Errorf("token file is empty. Restart the server with: shield-study serve")
	}

	if quietToken {
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Admin token: %s\n", token)
	return nil
}
