package cli

import (
	"testing"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
)

func candidateNames(candidates []ballot.Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

func TestSortCandidates(t *testing.T) {
	base := []ballot.Candidate{
		{Rank: "3", Name: "Smoltz", Votes: intPtr(455)},
		{Rank: "10", Name: "Raines", Votes: nil},
		{Rank: "1", Name: "Johnson", Votes: intPtr(534)},
		{Rank: "", Name: "biggio", Votes: intPtr(455)},
	}

	tests := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{"rank numeric, unranked last", SortByRank, []string{"Johnson", "Smoltz", "Raines", "biggio"}},
		{"votes descending, ties stable, unknown last", SortByVotes, []string{"Johnson", "Smoltz", "biggio", "Raines"}},
		{"name case-insensitive", SortByName, []string{"biggio", "Johnson", "Raines", "Smoltz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := append([]ballot.Candidate(nil), base...)
			sortCandidates(candidates, tt.order)

			got := candidateNames(candidates)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("order = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    SortOrder
		wantErr bool
	}{
		{"rank", SortByRank, false},
		{"VOTES", SortByVotes, false},
		{"name", SortByName, false},
		{"", SortByRank, false},
		{"war", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortOrder(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortOrder(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortOrder(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
