// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// DashboardCachePrefix is the prefix for cached public dashboard payloads.
const DashboardCachePrefix = "dashboard:"

// DashboardCacheTTL is the time-to-live for cached public dashboards.
const DashboardCacheTTL = 1 * time.Hour

// TokenTTL is the lifetime of issued auth tokens.
const TokenTTL = 72 * time.Hour
