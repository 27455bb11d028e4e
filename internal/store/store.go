package store

import "context"

// Store defines the host-side persistence a study runs against
type Store interface {
	// Local storage operations
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, items map[string]any) error
	Remove(ctx context.Context, keys ...string) error
	ListItems(ctx context.Context) ([]*Item, error)
	Clear(ctx context.Context) error

	// Preference operations
	GetStringPref(ctx context.Context, name string) (string, bool, error)
	SetStringPref(ctx context.Context, name, value string) error
	ClearPref(ctx context.Context, name string) error
	ListPrefs(ctx context.Context) ([]*Pref, error)

	// Lifecycle
	Close() error
}
