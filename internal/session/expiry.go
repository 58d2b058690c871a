package session

import (
	"strconv"
	"strings"
	"time"
)

// SessionTTL is how long a login stays valid: 244 hours, a little over ten days.
const SessionTTL = 244 * time.Hour

// DefaultCheckInterval is how often Watch re-checks expiry.
const DefaultCheckInterval = 5 * time.Minute

// IsExpired reports whether a session that began at loginAt has outlived
// SessionTTL at now. Exactly SessionTTL old is still valid.
func IsExpired(loginAt, now time.Time) bool {
	return Expired(loginAt, now, SessionTTL)
}

// Expired is IsExpired with an explicit lifetime.
func Expired(loginAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(loginAt) > ttl
}

// ParseLoginTime reads the persisted epoch-milliseconds timestamp.
func ParseLoginTime(raw string) (time.Time, bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// FormatLoginTime is the inverse of ParseLoginTime.
func FormatLoginTime(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
