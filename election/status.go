// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// DeriveStatus classifies an election by its time bounds. The active window
// is inclusive on both ends: an election is active at the exact start instant
// and still active at the exact end instant.
func DeriveStatus(start, end, now time.Time) string {
	if now.Before(start) {
		return models.StatusUpcoming
	}
	if now.After(end) {
		return models.StatusEnded
	}
	return models.StatusActive
}
