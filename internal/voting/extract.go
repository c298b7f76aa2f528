package voting

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/hof-votes/internal/htmltable"
)

// TableIDs are the element ids of the voting table, in lookup order.
// When several tables share an id the first in the document is used.
var TableIDs = []string{"hof_voting", "hof_ballot"}

// column lookup keys: data-stat attributes first, then header text
var (
	yearStats    = []string{"year_ID", "year_id", "year"}
	yearNames    = []string{"Year", "Yr"}
	votesStats   = []string{"votes"}
	votesNames   = []string{"Votes"}
	ballotsStats = []string{"ballots", "tot_ballots", "ballots_cast"}
	ballotsNames = []string{"Ballots", "Tot", "Total Ballots"}
	pctStats     = []string{"votes_pct", "vote_pct", "pct"}
	pctNames     = []string{"%", "%vote", "% Vote", "% of Ballots", "Pct"}
	inductStats  = []string{"inducted", "result"}
	inductNames  = []string{"Inducted", "Result"}
)

// columnMap holds header positions, -1 when the table lacks the column
type columnMap struct {
	year, votes, ballots, pct, inducted int
}

// Extract parses a player page and returns its voting table.
// ok is false when the page has no voting table.
func Extract(html string) (table VotingTable, ok bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return VotingTable{}, false
	}
	return ExtractDocument(doc)
}

// ExtractDocument is Extract for an already parsed document
func ExtractDocument(doc *goquery.Document) (VotingTable, bool) {
	sel, found := htmltable.FindTable(doc, TableIDs...)
	if !found {
		return VotingTable{}, false
	}

	columns := htmltable.Header(sel)
	cm := mapColumns(columns)

	records := make([]VotingRecord, 0)
	htmltable.BodyRows(sel).Each(func(i int, row *goquery.Selection) {
		if rec, ok := parseRow(htmltable.Cells(row), columns, cm); ok {
			records = append(records, rec)
		}
	})

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Year < records[j].Year
	})

	return VotingTable{
		PlayerID: canonicalPlayerID(doc),
		Records:  records,
	}, true
}

func mapColumns(columns []htmltable.Column) columnMap {
	cm := columnMap{
		year:     htmltable.ColumnIndex(columns, yearStats, yearNames),
		votes:    htmltable.ColumnIndex(columns, votesStats, votesNames),
		ballots:  htmltable.ColumnIndex(columns, ballotsStats, ballotsNames),
		pct:      htmltable.ColumnIndex(columns, pctStats, pctNames),
		inducted: htmltable.ColumnIndex(columns, inductStats, inductNames),
	}
	// Year is the row header on the source site even when unlabeled
	if cm.year < 0 {
		cm.year = 0
	}
	return cm
}

// parseRow converts one body row. Rows without a readable year are not records.
func parseRow(cells []htmltable.Cell, columns []htmltable.Column, cm columnMap) (VotingRecord, bool) {
	yearCell, ok := htmltable.CellAt(cells, columns, cm.year)
	if !ok {
		return VotingRecord{}, false
	}
	year, ok := htmltable.LeadingInt(yearCell.Text)
	if !ok {
		return VotingRecord{}, false
	}

	rec := VotingRecord{Year: year}
	if cell, ok := htmltable.CellAt(cells, columns, cm.votes); ok {
		rec.Votes = htmltable.IntPtr(cell.Text)
	}
	if cell, ok := htmltable.CellAt(cells, columns, cm.ballots); ok {
		rec.Ballots = htmltable.IntPtr(cell.Text)
	}
	if cell, ok := htmltable.CellAt(cells, columns, cm.pct); ok {
		rec.Percentage = percentage(cell.Text)
	}
	if cell, ok := htmltable.CellAt(cells, columns, cm.inducted); ok {
		rec.Inducted = htmltable.BoolPtr(cell.Text)
	}

	return rec, true
}

// percentage reads a 0-100 value; anything outside that range is treated as malformed
func percentage(text string) *float64 {
	pct := htmltable.FloatPtr(text)
	if pct == nil || *pct < 0 || *pct > 100 {
		return nil
	}
	return pct
}

// canonicalPlayerID reads the player id from <link rel="canonical">
func canonicalPlayerID(doc *goquery.Document) string {
	href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	if !ok {
		return ""
	}
	return htmltable.PlayerIDFromHref(href)
}
