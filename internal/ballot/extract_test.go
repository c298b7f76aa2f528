package ballot

import (
	"os"
	"testing"

	"github.com/pfrederiksen/hof-votes/internal/voting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/hof_2015.html")
	require.NoError(t, err)
	return string(data)
}

func TestExtract_Fixture(t *testing.T) {
	b, ok := Extract(loadFixture(t), 2015)
	require.True(t, ok)

	assert.Equal(t, 2015, b.Year)
	require.NotNil(t, b.TotalBallots)
	assert.Equal(t, 549, *b.TotalBallots)
	assert.Equal(t, []string{"Rk", "Name", "YoB", "Votes", "%vote", "WAR", "G", "H", "HR", "W", "H.1", "HR.1"}, b.Columns)

	require.Len(t, b.Candidates, 6)

	first := b.Candidates[0]
	assert.Equal(t, "1", first.Rank)
	assert.Equal(t, "Randy Johnson", first.Name)
	assert.Equal(t, "johnsra05", first.PlayerID)
	require.NotNil(t, first.YearOnBallot)
	assert.Equal(t, 1, *first.YearOnBallot)
	require.NotNil(t, first.Votes)
	assert.Equal(t, 534, *first.Votes)
	require.NotNil(t, first.Percentage)
	assert.InDelta(t, 97.3, *first.Percentage, 1e-9)
	assert.Equal(t, "3346", first.Fields["H.1"])
	assert.Equal(t, "", first.Fields["H"])

	biggio := b.Candidates[3]
	require.NotNil(t, biggio.YearOnBallot)
	assert.Equal(t, 3, *biggio.YearOnBallot)
	assert.Equal(t, "3060", biggio.Fields["H"])
}

func TestExtract_MissingCellsDegrade(t *testing.T) {
	b, ok := Extract(loadFixture(t), 2015)
	require.True(t, ok)

	raines, ok := b.Candidate("raineti01")
	require.True(t, ok)
	assert.Equal(t, "Tim Raines", raines.Name)
	assert.Nil(t, raines.Votes)
	assert.Nil(t, raines.Percentage)
	assert.Nil(t, raines.Inducted())
	require.NotNil(t, raines.YearOnBallot)
	assert.Equal(t, 8, *raines.YearOnBallot)
}

func TestExtract_Absent(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "no official results yet",
			html: `<html><head><title>2030 Hall of Fame Ballot | Baseball-Reference.com</title></head><body></body></html>`,
		},
		{
			name: "title matches but table missing",
			html: `<html><head><title>2015 Hall of Fame Voting</title></head><body><p>soon</p></body></html>`,
		},
		{
			name: "no title",
			html: `<table id="hof_BBWAA"><tr><td>1</td></tr></table>`,
		},
		{
			name: "empty",
			html: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := Extract(tt.html, 2015)
			assert.False(t, ok)
			assert.Empty(t, b.Candidates)
		})
	}
}

func TestExtract_TotalBallotsMissing(t *testing.T) {
	html := `<html><head><title>1936 Hall of Fame Voting</title></head><body>
		<table id="hof_BBWAA">
			<thead><tr><th>Rk</th><th>Name</th><th>Votes</th><th>%vote</th></tr></thead>
			<tbody><tr><th>1</th><td><a href="/players/c/cobbty01.shtml">Ty Cobb</a></td><td>222</td><td>98.2</td></tr></tbody>
		</table></body></html>`

	b, ok := Extract(html, 1936)
	require.True(t, ok)
	assert.Nil(t, b.TotalBallots)
	require.Len(t, b.Candidates, 1)
	assert.Equal(t, "cobbty01", b.Candidates[0].PlayerID)
	assert.Nil(t, b.Candidates[0].YearOnBallot)
}

func TestExtract_HeaderRowWithoutThead(t *testing.T) {
	html := `<html><head><title>2015 Hall of Fame Voting</title></head><body>
		<table id="hof_BBWAA">
			<tr><th>Rk</th><th>Name</th><th>Votes</th><th>%vote</th></tr>
			<tr><th>1</th><td><a href="/players/j/johnsra05.shtml">Randy Johnson</a></td><td>534</td><td>97.3%</td></tr>
		</table></body></html>`

	b, ok := Extract(html, 2015)
	require.True(t, ok)
	assert.Equal(t, []string{"Rk", "Name", "Votes", "%vote"}, b.Columns)
	require.Len(t, b.Candidates, 1)
	assert.Equal(t, "1", b.Candidates[0].Rank)
	assert.Equal(t, "Randy Johnson", b.Candidates[0].Name)
	assert.Equal(t, "johnsra05", b.Candidates[0].PlayerID)
}

func TestExtract_MissingCellKeepsColumns(t *testing.T) {
	html := `<html><head><title>2015 Hall of Fame Voting</title></head><body>
		<table id="hof_BBWAA">
			<thead><tr><th data-stat="ranker">Rk</th><th data-stat="player">Name</th><th data-stat="year_on_ballot">YoB</th><th data-stat="votes">Votes</th></tr></thead>
			<tbody><tr><th data-stat="ranker">1</th><td data-stat="player"><a href="/players/j/johnsra05.shtml">Randy Johnson</a></td><td data-stat="votes">534</td></tr></tbody>
		</table></body></html>`

	b, ok := Extract(html, 2015)
	require.True(t, ok)
	require.Len(t, b.Candidates, 1)

	c := b.Candidates[0]
	require.NotNil(t, c.Votes)
	assert.Equal(t, 534, *c.Votes)
	assert.Nil(t, c.YearOnBallot)
	assert.Equal(t, map[string]string{"Rk": "1", "Name": "Randy Johnson", "Votes": "534"}, c.Fields)
}

func TestExtract_TableInComment(t *testing.T) {
	html := `<html><head><title>2015 Hall of Fame Voting</title></head><body>
		<div id="all_hof_BBWAA"><!--
			<div id="hof_BBWAA_sh"><div class="section_heading_text"><ul><li>549 ballots</li></ul></div></div>
			<table id="hof_BBWAA">
				<thead><tr><th>Rk</th><th>Name</th><th>Votes</th><th>%vote</th></tr></thead>
				<tbody><tr><th>1</th><td><a href="/players/j/johnsra05.shtml">Randy Johnson</a></td><td>534</td><td>97.3%</td></tr></tbody>
			</table>
		--></div></body></html>`

	b, ok := Extract(html, 2015)
	require.True(t, ok)
	require.Len(t, b.Candidates, 1)
	require.NotNil(t, b.TotalBallots)
	assert.Equal(t, 549, *b.TotalBallots)
}

func TestBallot_Record(t *testing.T) {
	b, ok := Extract(loadFixture(t), 2015)
	require.True(t, ok)

	rec, ok := b.Record("smoltjo01")
	require.True(t, ok)

	votes, total, pct, inducted := 455, 549, 82.9, true
	assert.Equal(t, voting.VotingRecord{
		Year:       2015,
		Votes:      &votes,
		Ballots:    &total,
		Percentage: &pct,
		Inducted:   &inducted,
	}, rec)

	piazza, ok := b.Record("piazzmi01")
	require.True(t, ok)
	require.NotNil(t, piazza.Inducted)
	assert.False(t, *piazza.Inducted)

	_, ok = b.Record("nobody01")
	assert.False(t, ok)
}

func TestBallot_Elected(t *testing.T) {
	b, ok := Extract(loadFixture(t), 2015)
	require.True(t, ok)

	names := make([]string, 0)
	for _, c := range b.Elected() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Randy Johnson", "Pedro Martinez", "John Smoltz", "Craig Biggio"}, names)
}

func TestUniqueColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"H", "HR", "H.1", "H.2", "BB"},
		uniqueColumns([]string{"H", "HR", "H", "H", "BB"}),
	)
	assert.Empty(t, uniqueColumns(nil))
}
