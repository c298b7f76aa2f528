package voting

// VotingRecord is one year a player appeared on a Hall of Fame ballot.
// Nil pointer fields are values the source table did not provide.
type VotingRecord struct {
	Year       int      `json:"year"`
	Votes      *int     `json:"votes,omitempty"`
	Ballots    *int     `json:"ballots,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Inducted   *bool    `json:"inducted,omitempty"`
}

// VotingTable is a player's voting history ordered by year ascending
type VotingTable struct {
	PlayerID string         `json:"player_id,omitempty"`
	Records  []VotingRecord `json:"records"`
}

// Len returns the number of records
func (t VotingTable) Len() int {
	return len(t.Records)
}

// Last returns the most recent record
func (t VotingTable) Last() (VotingRecord, bool) {
	if len(t.Records) == 0 {
		return VotingRecord{}, false
	}
	return t.Records[len(t.Records)-1], true
}

// Inducted reports whether any record carries a set, true induction flag
func (t VotingTable) Inducted() bool {
	for _, r := range t.Records {
		if r.Inducted != nil && *r.Inducted {
			return true
		}
	}
	return false
}
