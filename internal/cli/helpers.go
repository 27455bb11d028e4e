package cli

import (
	"fmt"
	"os"

	"github.com/gkobilansky/shield-study/internal/permissions"
	"github.com/gkobilansky/shield-study/internal/store"
	"github.com/gkobilansky/shield-study/internal/study"
)

// withStore opens the database, executes the function, and handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// withBuilder wires a study builder to the local store and the configured
// permissions source. Stored prefs become testing overrides only when
// prefOverrides is set.
func withBuilder(prefOverrides bool, fn func(*study.Builder, *store.SQLiteStore) error) error {
	perms, err := permissions.New(permissionsMode, os.Stdin, os.Stderr)
	if err != nil {
		return err
	}

	return withStore(func(s *store.SQLiteStore) error {
		host := study.Host{
			Runtime:     study.ExtensionID(extensionID),
			Storage:     s,
			Permissions: perms,
		}
		if prefOverrides {
			host.Prefs = s
		}

		return fn(study.NewBuilder(host, base, logger), s)
	})
}
