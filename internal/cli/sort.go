package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByRank  SortOrder = "rank"
	SortByVotes SortOrder = "votes"
	SortByName  SortOrder = "name"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByRank, SortByVotes, SortByName:
		return order, nil
	case "":
		return SortByRank, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'rank', 'votes' or 'name')", s)
	}
}

// sortCandidates sorts candidates in place. Ties keep source order.
func sortCandidates(candidates []ballot.Candidate, order SortOrder) {
	switch order {
	case SortByRank:
		sort.SliceStable(candidates, func(i, j int) bool {
			return compareByRank(candidates[i], candidates[j])
		})
	case SortByVotes:
		sort.SliceStable(candidates, func(i, j int) bool {
			return compareByVotes(candidates[i], candidates[j])
		})
	case SortByName:
		sort.SliceStable(candidates, func(i, j int) bool {
			ni, nj := strings.ToLower(candidates[i].Name), strings.ToLower(candidates[j].Name)
			if ni != nj {
				return ni < nj
			}
			// If names are equal, sort by votes
			return compareByVotes(candidates[i], candidates[j])
		})
	}
}

// compareByVotes puts more votes first and unknown vote counts last
func compareByVotes(i, j ballot.Candidate) bool {
	if i.Votes != nil && j.Votes != nil {
		return *i.Votes > *j.Votes
	}
	return i.Votes != nil && j.Votes == nil
}

// compareByRank compares numeric ranks; unparsable ranks go last
func compareByRank(i, j ballot.Candidate) bool {
	ri, errI := strconv.Atoi(i.Rank)
	rj, errJ := strconv.Atoi(j.Rank)

	if errI == nil && errJ == nil {
		return ri < rj
	}
	if errI == nil {
		return true
	}
	return false
}
