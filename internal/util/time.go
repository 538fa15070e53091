package util

import "time"

const displayTimeLayout = "2006-01-02 15:04"

// NowMillis returns the current wall clock as milliseconds since the Unix
// epoch, the precision palette timestamps are stored at.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// FormatMillis renders a stored millisecond timestamp for display in local time.
func FormatMillis(millis int64) string {
	return time.UnixMilli(millis).Format(displayTimeLayout)
}
