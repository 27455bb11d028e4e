package cli

import (
	"path/filepath"

	"github.com/gkobilansky/shield-study/internal/server"
	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/gkobilansky/shield-study/internal/study"
	"github.com/spf13/cobra"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the shield-study HTTP server.

The server provides:
  - GET /setup for the resolved study setup
  - GET /enroll for the enrollment decision
  - POST /admin/reset to clear the cached decision (token protected)
  - GET /health

Example:
  shield-study serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", envConfig.Port, "port to listen on")
	serveCmd.Flags().BoolVar(&prefOverrides, "pref-overrides", false, "fill testing overrides from stored prefs")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withBuilder(prefOverrides, func(b *study.Builder, s *store.SQLiteStore) error {
		srv := server.New(b, s, port, getTokenFilePath(), logger)

		cmd.Printf("shield-study running on http://localhost:%d/setup\n", port)
		cmd.Printf("Admin token: %s\n", srv.Token())
		cmd.Println()
		cmd.Println("Press Ctrl+C to stop")

		return srv.Start()
	})
}

// getTokenFilePath returns the path to the token file
func getTokenFilePath() string {
	// Store token file alongside the database
	dir := filepath.Dir(dbPath)
	return filepath.Join(dir, ".shield-study-token")
}
