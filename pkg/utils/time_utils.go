package utils

import "time"

// AgeInDays returns the whole number of days between t and now.
// Both timestamps are normalized to UTC so the local clock's zone
// cannot skew the comparison against provider-recorded times.
func AgeInDays(t time.Time, now time.Time) int {
	return int(now.UTC().Sub(t.UTC()).Hours() / 24)
}

// CalculateElapsedDays calculates the number of days elapsed since a given time
func CalculateElapsedDays(since time.Time) int {
	return AgeInDays(since, time.Now())
}
