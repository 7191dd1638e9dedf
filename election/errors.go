// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

var (
	ErrAlreadyVoted     = errors.New("you have already voted in this election")
	ErrElectionNotOpen  = errors.New("election is not open for voting")
	ErrNotAuthenticated = errors.New("you must be logged in to vote")
	ErrNotFound         = errors.New("not found")
)
