package study

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Runtime exposes the identity of the running extension.
type Runtime interface {
	ID() string
}

// ExtensionID is a Runtime with a fixed identity.
type ExtensionID string

func (id ExtensionID) ID() string {
	return string(id)
}

// Storage is the extension's persistent local key-value store. Values are
// JSON encoded; Get reports false for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, items map[string]any) error
	Remove(ctx context.Context, keys ...string) error
}

type Permissions interface {
	DataPermissions(ctx context.Context) (DataPermissions, error)
}

// Prefs reads string preferences. Used for testing overrides only.
type Prefs interface {
	GetStringPref(ctx context.Context, name string) (string, bool, error)
}

// Host bundles the capabilities a Builder needs. Prefs may be nil, in which
// case no testing overrides are applied.
type Host struct {
	Runtime     Runtime
	Storage     Storage
	Permissions Permissions
	Prefs       Prefs
}

// PrefNames are the preference names holding testing overrides.
type PrefNames struct {
	Variation         string
	FirstRunTimestamp string
}

func PrefNamesFor(extensionID string) PrefNames {
	return PrefNames{
		Variation:         fmt.Sprintf("shield.%s.variation", extensionID),
		FirstRunTimestamp: fmt.Sprintf("shield.%s.firstRunTimestamp", extensionID),
	}
}

// Builder resolves the runtime fields of a study setup.
type Builder struct {
	host   Host
	base   Setup
	logger *zap.Logger
}

func NewBuilder(host Host, base Setup, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		host:   host,
		base:   base.Clone(),
		logger: logger,
	}
}

// ShouldAllowEnroll reports whether first-run enrollment may proceed. The
// answer is computed from data permissions once and cached in local storage
// for every later run. Concurrent first runs may both query and write.
func (b *Builder) ShouldAllowEnroll(ctx context.Context) (bool, error) {
	cache, err := b.loadEnrollCache(ctx)
	if err != nil {
		return false, err
	}

	allowed, _, err := Resolve(ctx, cache, b.host.Permissions.DataPermissions)
	if err != nil {
		return false, fmt.Errorf("failed to query data permissions: %w", err)
	}

	if _, known := cache.Value(); known {
		b.logger.Debug("enrollment decision cached", zap.Bool("allowed", allowed))
		return allowed, nil
	}

	if err := b.host.Storage.Set(ctx, map[string]any{AllowedToEnrollKey: allowed}); err != nil {
		return false, fmt.Errorf("failed to cache enrollment decision: %w", err)
	}
	b.logger.Debug("enrollment decision computed", zap.Bool("allowed", allowed))
	return allowed, nil
}

// ResetEnrollment forgets the cached decision so the next call to
// ShouldAllowEnroll queries permissions again.
func (b *Builder) ResetEnrollment(ctx context.Context) error {
	if err := b.host.Storage.Remove(ctx, AllowedToEnrollKey); err != nil {
		return fmt.Errorf("failed to reset enrollment: %w", err)
	}
	b.logger.Debug("enrollment decision reset")
	return nil
}

// StudySetup returns a new setup built from the base with allowEnroll and
// testing resolved. The base itself is never modified.
func (b *Builder) StudySetup(ctx context.Context) (*Setup, error) {
	names := PrefNamesFor(b.host.Runtime.ID())

	allowed, err := b.ShouldAllowEnroll(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := b.testingOverrides(ctx, names)
	if err != nil {
		return nil, err
	}

	setup := b.base.Clone()
	setup.AllowEnroll = allowed
	setup.Testing = overrides
	return &setup, nil
}

func (b *Builder) loadEnrollCache(ctx context.Context) (EnrollCache, error) {
	raw, ok, err := b.host.Storage.Get(ctx, AllowedToEnrollKey)
	if err != nil {
		return EnrollCache{}, fmt.Errorf("failed to read %s: %w", AllowedToEnrollKey, err)
	}
	if !ok {
		return UnknownEnroll(), nil
	}

	var allowed bool
	if err := json.Unmarshal(raw, &allowed); err != nil {
		return EnrollCache{}, fmt.Errorf("failed to decode %s: %w", AllowedToEnrollKey, err)
	}
	return KnownEnroll(allowed), nil
}

func (b *Builder) testingOverrides(ctx context.Context, names PrefNames) (Testing, error) {
	var t Testing
	if b.host.Prefs == nil {
		return t, nil
	}

	variation, ok, err := b.host.Prefs.GetStringPref(ctx, names.Variation)
	if err != nil {
		return t, fmt.Errorf("failed to read pref %s: %w", names.Variation, err)
	}
	if ok {
		t.Variation = &variation
	}

	firstRun, ok, err := b.host.Prefs.GetStringPref(ctx, names.FirstRunTimestamp)
	if err != nil {
		return t, fmt.Errorf("failed to read pref %s: %w", names.FirstRunTimestamp, err)
	}
	if ok {
		t.FirstRunTimestamp = &firstRun
	}

	if t.Variation != nil || t.FirstRunTimestamp != nil {
		b.logger.Debug("testing overrides applied",
			zap.Stringp("variation", t.Variation),
			zap.Stringp("firstRunTimestamp", t.FirstRunTimestamp))
	}
	return t, nil
}
