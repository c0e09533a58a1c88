// File: utils/constants.go
package utils

import "time"

// AvailabilityCachePrefix is the prefix used for Redis availability snapshot keys.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL is the time-to-live for availability snapshot entries.
// Writes invalidate eagerly; the TTL only bounds staleness after missed
// invalidations.
const AvailabilityCacheTTL = 2 * time.Minute
