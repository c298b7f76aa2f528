package ballot

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/hof-votes/internal/htmltable"
)

const (
	// TableID is the id of the BBWAA results table
	TableID = "hof_BBWAA"
	// SectionHeadingID holds the ballot count above the results table
	SectionHeadingID = "hof_BBWAA_sh"

	// titleMarker must appear in <title> for pages that carry official results
	titleMarker = "hall of fame voting"
)

var (
	nameStats  = []string{"player"}
	nameNames  = []string{"Name", "Player"}
	yobStats   = []string{"year_on_ballot", "hof_year_on_ballot"}
	yobNames   = []string{"YoB"}
	votesStats = []string{"votes"}
	votesNames = []string{"Votes"}
	pctStats   = []string{"votes_pct"}
	pctNames   = []string{"%vote", "% vote", "%"}
)

// Extract parses a year results page. ok is false when the page has no official
// BBWAA results.
func Extract(html string, year int) (b Ballot, ok bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Ballot{}, false
	}
	return ExtractDocument(doc, year)
}

// ExtractDocument is Extract for an already parsed document
func ExtractDocument(doc *goquery.Document, year int) (Ballot, bool) {
	title := strings.ToLower(doc.Find("title").First().Text())
	if !strings.Contains(title, titleMarker) {
		return Ballot{}, false
	}

	table, found := htmltable.FindTable(doc, TableID)
	if !found {
		return Ballot{}, false
	}

	columns := htmltable.Header(table)
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	names = uniqueColumns(names)

	nameIdx := htmltable.ColumnIndex(columns, nameStats, nameNames)
	yobIdx := htmltable.ColumnIndex(columns, yobStats, yobNames)
	votesIdx := htmltable.ColumnIndex(columns, votesStats, votesNames)
	pctIdx := htmltable.ColumnIndex(columns, pctStats, pctNames)

	candidates := make([]Candidate, 0)
	htmltable.BodyRows(table).Each(func(i int, row *goquery.Selection) {
		cells := htmltable.Cells(row)
		if len(cells) == 0 {
			return
		}

		rank := htmltable.NormalizeText(row.Children().Filter("th").First().Text())
		c := Candidate{
			Rank:   strings.TrimSuffix(rank, "."),
			Fields: make(map[string]string, len(cells)),
		}

		// Matched by data-stat so a missing cell leaves its column empty
		for j, name := range names {
			if cell, ok := htmltable.CellAt(cells, columns, j); ok {
				c.Fields[name] = cell.LinkText()
			}
		}
		for _, cell := range cells {
			if id := cell.PlayerID(); id != "" {
				c.PlayerID = id
				break
			}
		}

		if cell, ok := htmltable.CellAt(cells, columns, nameIdx); ok {
			c.Name = cell.LinkText()
		}
		if cell, ok := htmltable.CellAt(cells, columns, yobIdx); ok {
			// "1st", "10th"
			if n, ok := htmltable.LeadingInt(cell.Text); ok {
				c.YearOnBallot = &n
			}
		}
		if cell, ok := htmltable.CellAt(cells, columns, votesIdx); ok {
			c.Votes = htmltable.IntPtr(cell.Text)
		}
		if cell, ok := htmltable.CellAt(cells, columns, pctIdx); ok {
			if pct := htmltable.FloatPtr(cell.Text); pct != nil && *pct >= 0 && *pct <= 100 {
				c.Percentage = pct
			}
		}

		if c.Name == "" && c.PlayerID == "" {
			return
		}
		candidates = append(candidates, c)
	})

	return Ballot{
		Year:         year,
		TotalBallots: totalBallots(doc),
		Columns:      names,
		Candidates:   candidates,
	}, true
}

// totalBallots reads "549 ballots (412 needed for election)" from the section heading
func totalBallots(doc *goquery.Document) *int {
	li, found := htmltable.FindCommented(doc, "#"+SectionHeadingID+" .section_heading_text li")
	if !found {
		return nil
	}
	n, ok := htmltable.LeadingInt(li.Text())
	if !ok {
		return nil
	}
	return &n
}
