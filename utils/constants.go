// File: utils/constants.go
package utils

import "time"

// ProviderCachePrefix is the prefix used for Redis provider-profile cache keys.
const ProviderCachePrefix = "provider:profile:"

// ProviderCacheTTL is the time-to-live for provider-profile cache entries.
// Entries are also invalidated explicitly whenever derived fields change.
const ProviderCacheTTL = 10 * time.Minute

// HoldKeyPrefix is the prefix used for Redis booking-hold keys.
const HoldKeyPrefix = "hold:"
