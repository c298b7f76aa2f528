package ballot

import (
	"sort"
)

// Movement is a returning candidate's change between two elections
type Movement struct {
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Previous *float64 `json:"previous_pct,omitempty"`
	Current  *float64 `json:"current_pct,omitempty"`
	Change   *float64 `json:"change,omitempty"` // percentage points
}

// Diff contains the results of comparing two years of results
type Diff struct {
	FromYear  int         `json:"from_year"`
	ToYear    int         `json:"to_year"`
	Debuts    []Candidate `json:"debuts"`
	Departed  []Candidate `json:"departed"`
	Returning []Movement  `json:"returning"`
}

// Compare matches candidates of two ballots by player id (name when the id is
// unknown). Debuts are only on current, Departed only on previous, in source order.
// Returning candidates are sorted by change, largest gain first.
func Compare(previous, current Ballot) Diff {
	diff := Diff{
		FromYear:  previous.Year,
		ToYear:    current.Year,
		Debuts:    make([]Candidate, 0),
		Departed:  make([]Candidate, 0),
		Returning: make([]Movement, 0),
	}

	prevByKey := make(map[string]Candidate, len(previous.Candidates))
	for _, c := range previous.Candidates {
		prevByKey[candidateKey(c)] = c
	}
	seen := make(map[string]bool, len(current.Candidates))

	for _, c := range current.Candidates {
		key := candidateKey(c)
		seen[key] = true

		prev, exists := prevByKey[key]
		if !exists {
			diff.Debuts = append(diff.Debuts, c)
			continue
		}

		m := Movement{
			PlayerID: c.PlayerID,
			Name:     c.Name,
			Previous: prev.Percentage,
			Current:  c.Percentage,
		}
		if prev.Percentage != nil && c.Percentage != nil {
			change := *c.Percentage - *prev.Percentage
			m.Change = &change
		}
		diff.Returning = append(diff.Returning, m)
	}

	for _, c := range previous.Candidates {
		if !seen[candidateKey(c)] {
			diff.Departed = append(diff.Departed, c)
		}
	}

	// Unknown changes sort last
	sort.SliceStable(diff.Returning, func(i, j int) bool {
		ci, cj := diff.Returning[i].Change, diff.Returning[j].Change
		if ci != nil && cj != nil {
			return *ci > *cj
		}
		return ci != nil && cj == nil
	})

	return diff
}

func candidateKey(c Candidate) string {
	if c.PlayerID != "" {
		return c.PlayerID
	}
	return "name:" + c.Name
}
