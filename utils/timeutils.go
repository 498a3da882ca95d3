package utils

import (
	"math"
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// Iso8601FromEpoch converts fractional epoch seconds to ISO8601 with
// millisecond precision. Returns "" for 0, which marks an unknown time.
func Iso8601FromEpoch(sec float64) string {
	if sec == 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return ""
	}
	whole, frac := math.Modf(sec)
	t := time.Unix(int64(whole), int64(math.Round(frac*1e3))*int64(time.Millisecond))
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
