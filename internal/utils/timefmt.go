package utils

import (
	"time"
)

// snapshotTimestampLayout renders generation times down to the minute.
const snapshotTimestampLayout = "2006-01-02 15:04"

// FormatTimestamp formats the provided time in the local time zone for
// snapshot headers. The zero time formats to the empty string.
func FormatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(snapshotTimestampLayout)
}
