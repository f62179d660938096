// Package domain contains core domain types for the mind-os application.
package domain

import "errors"

// UnlimitedRemaining is reported for pro clients instead of a count.
const UnlimitedRemaining = -1

// ErrQuotaExceeded is returned when a client has spent its daily quota.
var ErrQuotaExceeded = errors.New("quota exceeded")

// UsageRecord tracks how many requests a client has made on a given day.
// Records are keyed by client key (remote IP) in the usage file; a record
// whose Date is not today is stale and must be dropped, not reused.
type UsageRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Pro   bool   `json:"is_pro,omitempty"`
}

// IsStale reports whether the record belongs to a day other than today.
func (r UsageRecord) IsStale(today string) bool {
	return r.Date != today
}
