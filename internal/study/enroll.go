package study

import "context"

// AllowedToEnrollKey is the local storage key caching the first-run decision.
const AllowedToEnrollKey = "allowedToEnroll"

// EnrollCache is either unknown (first run) or a known decision.
type EnrollCache struct {
	known   bool
	allowed bool
}

func UnknownEnroll() EnrollCache {
	return EnrollCache{}
}

func KnownEnroll(allowed bool) EnrollCache {
	return EnrollCache{known: true, allowed: allowed}
}

// Value returns the cached decision and whether there is one.
func (c EnrollCache) Value() (allowed, known bool) {
	return c.allowed, c.known
}

// PermissionsQuery asks the host which data collection is permitted.
type PermissionsQuery func(ctx context.Context) (DataPermissions, error)

// Resolve decides enrollment from the cache, calling query only when the
// cache is unknown. The returned cache is always known on success.
func Resolve(ctx context.Context, cache EnrollCache, query PermissionsQuery) (bool, EnrollCache, error) {
	if allowed, known := cache.Value(); known {
		return allowed, cache, nil
	}

	perms, err := query(ctx)
	if err != nil {
		return false, cache, err
	}

	return perms.Shield, KnownEnroll(perms.Shield), nil
}
