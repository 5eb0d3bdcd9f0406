package domain

import "time"

// TimestampPrecision is the resolution of every persisted timestamp. Both
// storage backends keep at least millisecond precision, so values created
// in memory compare equal to values read back.
const TimestampPrecision = time.Millisecond

// Now returns the current UTC time truncated to TimestampPrecision.
func Now() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}
