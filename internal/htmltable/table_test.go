package htmltable

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestFindTable(t *testing.T) {
	t.Run("live table", func(t *testing.T) {
		doc := mustDoc(t, `<table id="a"><tr><td>1</td></tr></table>`)
		table, ok := FindTable(doc, "a")
		require.True(t, ok)
		assert.Equal(t, "1", NormalizeText(table.Text()))
	})

	t.Run("table inside comment", func(t *testing.T) {
		doc := mustDoc(t, `<div id="all_a"><!--
			<table id="a"><tr><td>hidden</td></tr></table>
		--></div>`)
		table, ok := FindTable(doc, "a")
		require.True(t, ok)
		assert.Equal(t, "hidden", NormalizeText(table.Text()))
	})

	t.Run("live table wins over commented copy", func(t *testing.T) {
		doc := mustDoc(t, `<!-- <table id="a"><tr><td>comment</td></tr></table> -->
			<table id="a"><tr><td>live</td></tr></table>`)
		table, ok := FindTable(doc, "a")
		require.True(t, ok)
		assert.Equal(t, "live", NormalizeText(table.Text()))
	})

	t.Run("first duplicate wins", func(t *testing.T) {
		doc := mustDoc(t, `<table id="a"><tr><td>first</td></tr></table>
			<table id="a"><tr><td>second</td></tr></table>`)
		table, ok := FindTable(doc, "a")
		require.True(t, ok)
		assert.Equal(t, "first", NormalizeText(table.Text()))
	})

	t.Run("ids are tried in priority order", func(t *testing.T) {
		doc := mustDoc(t, `<table id="b"><tr><td>b</td></tr></table>
			<table id="a"><tr><td>a</td></tr></table>`)
		table, ok := FindTable(doc, "a", "b")
		require.True(t, ok)
		assert.Equal(t, "a", NormalizeText(table.Text()))
	})

	t.Run("missing", func(t *testing.T) {
		doc := mustDoc(t, `<p>nothing here</p><!-- just a note -->`)
		_, ok := FindTable(doc, "a")
		assert.False(t, ok)
	})

	t.Run("nil document", func(t *testing.T) {
		_, ok := FindTable(nil, "a")
		assert.False(t, ok)
	})
}

func TestFindCommented(t *testing.T) {
	doc := mustDoc(t, `<div><!-- <div id="x_sh"><ul><li>42 ballots</li></ul></div> --></div>`)
	sel, ok := FindCommented(doc, "#x_sh li")
	require.True(t, ok)
	assert.Equal(t, "42 ballots", NormalizeText(sel.Text()))

	_, ok = FindCommented(doc, "#missing")
	assert.False(t, ok)
}

func TestHeader(t *testing.T) {
	t.Run("last thead row", func(t *testing.T) {
		doc := mustDoc(t, `<table id="t"><thead>
			<tr class="over_header"><th colspan="2">Batting</th></tr>
			<tr><th data-stat="year_ID">Year</th><th data-stat="votes"> Votes </th></tr>
		</thead></table>`)
		table, _ := FindTable(doc, "t")
		assert.Equal(t, []Column{
			{Name: "Year", Stat: "year_ID"},
			{Name: "Votes", Stat: "votes"},
		}, Header(table))
	})

	t.Run("no thead", func(t *testing.T) {
		doc := mustDoc(t, `<table id="t"><tr><th>Year</th><th>Votes</th></tr><tr><td>2015</td><td>1</td></tr></table>`)
		table, _ := FindTable(doc, "t")
		cols := Header(table)
		require.Len(t, cols, 2)
		assert.Equal(t, "Votes", cols[1].Name)
	})

	t.Run("no header at all", func(t *testing.T) {
		doc := mustDoc(t, `<table id="t"><tr><td>2015</td></tr></table>`)
		table, _ := FindTable(doc, "t")
		assert.Empty(t, Header(table))
	})
}

func TestBodyRows(t *testing.T) {
	doc := mustDoc(t, `<table id="t">
		<thead><tr><th>Year</th></tr></thead>
		<tbody>
			<tr><th>2014</th></tr>
			<tr class="thead"><th>Year</th></tr>
			<tr class="spacer"></tr>
			<tr><th>2015</th></tr>
		</tbody>
	</table>`)
	table, _ := FindTable(doc, "t")
	rows := BodyRows(table)
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "2015", NormalizeText(rows.Eq(1).Text()))
}

func TestBodyRows_HeaderOutsideThead(t *testing.T) {
	doc := mustDoc(t, `<table id="t">
		<tr><th>Rk</th><th>Name</th></tr>
		<tr><th>1</th><td>Randy Johnson</td></tr>
		<tr><th>2</th><td>Pedro Martinez</td></tr>
	</table>`)
	table, _ := FindTable(doc, "t")

	rows := BodyRows(table)
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "Randy Johnson", NormalizeText(rows.Eq(0).Find("td").Text()))
	assert.Len(t, Header(table), 2)
}

func TestCellAt(t *testing.T) {
	columns := []Column{{Name: "Year", Stat: "year_ID"}, {Name: "Votes", Stat: "votes"}, {Name: "%", Stat: "votes_pct"}}

	t.Run("by data-stat when a cell is missing", func(t *testing.T) {
		cells := []Cell{{Text: "2015", Stat: "year_ID"}, {Text: "72.7", Stat: "votes_pct"}}
		cell, ok := CellAt(cells, columns, 2)
		require.True(t, ok)
		assert.Equal(t, "72.7", cell.Text)

		_, ok = CellAt(cells, columns, 1)
		assert.False(t, ok)
	})

	t.Run("by position without data-stat", func(t *testing.T) {
		cells := []Cell{{Text: "2015"}, {Text: "320"}}
		cell, ok := CellAt(cells, columns, 1)
		require.True(t, ok)
		assert.Equal(t, "320", cell.Text)

		_, ok = CellAt(cells, columns, 2)
		assert.False(t, ok)
	})

	t.Run("negative index", func(t *testing.T) {
		_, ok := CellAt(nil, columns, -1)
		assert.False(t, ok)
	})
}

func TestColumnIndex(t *testing.T) {
	columns := []Column{{Name: "Year"}, {Name: "% of Ballots", Stat: "votes_pct"}}
	assert.Equal(t, 1, ColumnIndex(columns, []string{"votes_pct"}, nil))
	assert.Equal(t, 0, ColumnIndex(columns, nil, []string{"year"}))
	assert.Equal(t, -1, ColumnIndex(columns, []string{"votes"}, []string{"Votes"}))
}

func TestPlayerIDFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/players/j/johnsra05.shtml", "johnsra05"},
		{"https://www.baseball-reference.com/players/o/o'neipa01.shtml", "o'neipa01"},
		{"/players/j/johnsra05.html", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayerIDFromHref(tt.href))
		})
	}
}

func TestCellLinkText(t *testing.T) {
	doc := mustDoc(t, `<table><tr><td><a href="/players/s/smoltjo01.shtml">John Smoltz</a> HOF</td></tr></table>`)
	cells := Cells(doc.Find("tr").First())
	require.Len(t, cells, 1)
	assert.Equal(t, "John Smoltz", cells[0].LinkText())
	assert.Equal(t, "smoltjo01", cells[0].PlayerID())
	assert.Equal(t, "John Smoltz HOF", cells[0].Text)
}
