package services

import "math"

const bytesPerMB = 1024 * 1024

// MBFromBytes converts a byte count to megabytes without rounding.
// Admission decisions always compare unrounded values; rounding is for
// display only (see RoundMB).
func MBFromBytes(bytes int64) float64 {
	return float64(bytes) / bytesPerMB
}

// RoundMB rounds a megabyte figure to two decimals for display.
func RoundMB(mb float64) float64 {
	return math.Round(mb*100) / 100
}

// CanAppendHistory decides whether more conversation history may be
// appended given the current usage snapshot. The comparison is strict: a
// client exactly at or over its limit may no longer append. The prospective
// write itself is not counted, so the last admitted exchange may overshoot
// the limit; that overshoot is bounded by one exchange and accepted.
// Conversation writes stop silently, they are never an error.
func CanAppendHistory(usedBytes int64, limitMB float64) bool {
	return MBFromBytes(usedBytes) < limitMB
}

// FitsStorageLimit decides whether a prospective profile edit fits the
// limit. Only a new total strictly over the limit is rejected; unlike
// history appends, landing exactly on the limit is allowed, and the
// rejection surfaces as an explicit error to the caller.
func FitsStorageLimit(prospectiveTotalBytes int64, limitMB float64) bool {
	return MBFromBytes(prospectiveTotalBytes) <= limitMB
}
