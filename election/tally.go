// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "github.com/danielhkuo/ballotbox/models"

// Tally counts votes per candidate. Every candidate appears in the result,
// including those with zero votes. Votes referencing a candidate not in the
// list (e.g. deleted after the vote was cast) are dropped from the counts.
// Result order follows candidate order.
func Tally(candidates []models.Candidate, votes []models.Vote) []models.CandidateResult {
	counts := make(map[string]int, len(candidates))
	for _, v := range votes {
		counts[v.CandidateID]++
	}

	results := make([]models.CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, models.CandidateResult{
			CandidateID:   c.ID,
			CandidateName: c.Name,
			Party:         c.Party,
			VoteCount:     counts[c.ID],
		})
	}
	return results
}

// Winner selects the candidate with the highest vote count. Ties go to the
// candidate encountered first in the result order, which follows candidate
// creation order. Returns nil for an empty result set.
func Winner(results []models.CandidateResult) *models.CandidateResult {
	if len(results) == 0 {
		return nil
	}
	winner := &results[0]
	for i := 1; i < len(results); i++ {
		if results[i].VoteCount > winner.VoteCount {
			winner = &results[i]
		}
	}
	return winner
}
