package repository

import "time"

// Zero bounds mean an open range; swap them for sentinels the SQL
// comparisons can use.

func orDistantPast(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0)
	}
	return t
}

func orDistantFuture(t time.Time) time.Time {
	if t.IsZero() {
		return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}
