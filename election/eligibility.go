// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// Eligibility is the decision for a (voter, election) vote attempt.
type Eligibility int

const (
	Eligible Eligibility = iota
	AlreadyVoted
	NotOpen
)

func (e Eligibility) String() string {
	switch e {
	case Eligible:
		return "eligible"
	case AlreadyVoted:
		return "already_voted"
	case NotOpen:
		return "not_open"
	default:
		return "unknown"
	}
}

// CanVote decides whether a voter may cast a vote in the given election.
// A prior vote always wins: once cast, a vote is never un-cast by a later
// status change, so AlreadyVoted is returned regardless of the election's
// current phase. This is a pure pre-check; the database uniqueness
// constraint on (election_id, voter_id) remains the authority.
func CanVote(e models.Election, hasVoted bool, now time.Time) Eligibility {
	if hasVoted {
		return AlreadyVoted
	}
	if DeriveStatus(e.StartTime, e.EndTime, now) != models.StatusActive {
		return NotOpen
	}
	return Eligible
}
