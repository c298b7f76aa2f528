package ballot

import (
	"strconv"

	"github.com/pfrederiksen/hof-votes/internal/voting"
)

// InductionThreshold is the share of ballots needed for BBWAA election
const InductionThreshold = 75.0

// Candidate is one player on a year's ballot
type Candidate struct {
	Rank         string            `json:"rank"`
	Name         string            `json:"name"`
	PlayerID     string            `json:"player_id,omitempty"`
	YearOnBallot *int              `json:"year_on_ballot,omitempty"`
	Votes        *int              `json:"votes,omitempty"`
	Percentage   *float64          `json:"percentage,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// Inducted reports whether the candidate cleared the induction threshold.
// It is nil when the vote percentage is unknown.
func (c Candidate) Inducted() *bool {
	if c.Percentage == nil {
		return nil
	}
	inducted := *c.Percentage >= InductionThreshold
	return &inducted
}

// Ballot is the BBWAA result table for one year, candidates in source order
type Ballot struct {
	Year         int         `json:"year"`
	TotalBallots *int        `json:"total_ballots,omitempty"`
	Columns      []string    `json:"columns"`
	Candidates   []Candidate `json:"candidates"`
}

// Candidate looks up a candidate by player id
func (b Ballot) Candidate(playerID string) (Candidate, bool) {
	for _, c := range b.Candidates {
		if c.PlayerID != "" && c.PlayerID == playerID {
			return c, true
		}
	}
	return Candidate{}, false
}

// Record projects a candidate onto the per-player voting record for this year
func (b Ballot) Record(playerID string) (voting.VotingRecord, bool) {
	c, ok := b.Candidate(playerID)
	if !ok {
		return voting.VotingRecord{}, false
	}
	return voting.VotingRecord{
		Year:       b.Year,
		Votes:      c.Votes,
		Ballots:    b.TotalBallots,
		Percentage: c.Percentage,
		Inducted:   c.Inducted(),
	}, true
}

// Elected returns the candidates at or above the induction threshold
func (b Ballot) Elected() []Candidate {
	elected := make([]Candidate, 0)
	for _, c := range b.Candidates {
		if in := c.Inducted(); in != nil && *in {
			elected = append(elected, c)
		}
	}
	return elected
}

// uniqueColumns suffixes repeated header names (".1", ".2") so every column keeps a
// distinct key. The results table repeats H, HR and BB for batting and pitching.
func uniqueColumns(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		if n, dup := seen[name]; dup {
			out[i] = name + "." + strconv.Itoa(n)
			seen[name] = n + 1
			continue
		}
		seen[name] = 1
		out[i] = name
	}
	return out
}
