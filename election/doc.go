// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the election lifecycle and voting eligibility
engine. Everything here is a pure function over time bounds and vote records;
persistence and side effects live in the handlers.

# Lifecycle

An election moves through three phases, derived from the clock on every read:

	upcoming --(now >= start_time)--> active --(now > end_time)--> ended

DeriveStatus classifies an election; the three ranges partition the timeline
with the active window inclusive of both boundary instants. Stored status is
a cache, not ground truth: handlers issue a fire-and-forget correction write
when they observe a stale value.

# Eligibility

CanVote returns a tri-state Eligibility decision:

	Eligible     - election active, no prior vote
	AlreadyVoted - a vote by this voter exists (regardless of phase)
	NotOpen      - election upcoming or ended

This pre-check is a UX affordance. The authoritative duplicate-vote guard is
the UNIQUE (election_id, voter_id) constraint in the database; a violation on
insert means another vote won the race.

# Tallies

Tally recounts raw vote rows grouped by candidate, including zero-vote
candidates. The elections.total_votes counter is advisory only (incremented
best-effort after the insert) and is never used for results. Winner selects
the maximum count, ties broken by first-encountered candidate order.

# Errors

Sentinel errors for the failure modes callers must distinguish:

	ErrAlreadyVoted, ErrElectionNotOpen, ErrNotAuthenticated, ErrNotFound
*/
package election
