package htmltable

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skipRowClasses marks body rows that carry no data (repeated headers, spacers)
var skipRowClasses = []string{"thead", "over_header", "spacer", "partial_table"}

var playerIDPattern = regexp.MustCompile(`([A-Za-z.']+\d+)\.shtml$`)

// Column is one header cell of a table
type Column struct {
	Name string // normalized header text
	Stat string // data-stat attribute, empty when absent
}

// Cell is one th/td of a body row
type Cell struct {
	Text string
	Stat string
	Sel  *goquery.Selection
}

// FindTable returns the first table whose id matches one of ids, in priority order.
// The live document is searched before markup embedded in HTML comments.
func FindTable(doc *goquery.Document, ids ...string) (*goquery.Selection, bool) {
	if doc == nil {
		return nil, false
	}

	var commented []*goquery.Document
	for _, id := range ids {
		if id == "" {
			continue
		}
		selector := "table#" + id

		if table := doc.Find(selector).First(); table.Length() > 0 {
			return table, true
		}

		if commented == nil {
			commented = commentedDocuments(doc)
		}
		for _, cdoc := range commented {
			if table := cdoc.Find(selector).First(); table.Length() > 0 {
				return table, true
			}
		}
	}

	return nil, false
}

// FindCommented returns the first element matching selector, searching the live
// document first and then markup embedded in HTML comments.
func FindCommented(doc *goquery.Document, selector string) (*goquery.Selection, bool) {
	if doc == nil {
		return nil, false
	}
	if sel := doc.Find(selector).First(); sel.Length() > 0 {
		return sel, true
	}
	for _, cdoc := range commentedDocuments(doc) {
		if sel := cdoc.Find(selector).First(); sel.Length() > 0 {
			return sel, true
		}
	}
	return nil, false
}

// commentedDocuments parses every HTML comment that contains markup
func commentedDocuments(doc *goquery.Document) []*goquery.Document {
	docs := make([]*goquery.Document, 0)
	for _, root := range doc.Nodes {
		walkComments(root, func(data string) {
			if !strings.Contains(data, "<") {
				return
			}
			cdoc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
			if err != nil {
				return
			}
			docs = append(docs, cdoc)
		})
	}
	return docs
}

func walkComments(n *html.Node, visit func(string)) {
	if n == nil {
		return
	}
	if n.Type == html.CommentNode {
		visit(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkComments(c, visit)
	}
}

// Header returns the columns of the table's last header row.
// Tables without a thead fall back to the first row made only of th cells.
func Header(table *goquery.Selection) []Column {
	row := headerRow(table)
	if row.Length() == 0 {
		return nil
	}

	columns := make([]Column, 0)
	row.Children().Filter("th, td").Each(func(i int, cell *goquery.Selection) {
		stat, _ := cell.Attr("data-stat")
		columns = append(columns, Column{
			Name: NormalizeText(cell.Text()),
			Stat: stat,
		})
	})
	return columns
}

// headerRow is the last thead row, or the first th-only row when the table
// has no thead. The parser wraps bare rows in an implied tbody, so that row
// may sit among the body rows.
func headerRow(table *goquery.Selection) *goquery.Selection {
	row := table.Find("thead tr").Last()
	if row.Length() > 0 {
		return row
	}
	table.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		if tr.Children().Filter("td").Length() == 0 && tr.Children().Filter("th").Length() > 0 {
			row = tr
			return false
		}
		return true
	})
	return row
}

// BodyRows returns the data rows of a table in document order.
// The header row is never a data row, even outside a thead.
func BodyRows(table *goquery.Selection) *goquery.Selection {
	header := headerRow(table)

	return table.Find("tbody tr").FilterFunction(func(i int, tr *goquery.Selection) bool {
		if header.Length() > 0 && tr.IsSelection(header) {
			return false
		}
		for _, class := range skipRowClasses {
			if tr.HasClass(class) {
				return false
			}
		}
		return tr.Children().Filter("th, td").Length() > 0
	})
}

// Cells returns the th/td cells of a row in order
func Cells(row *goquery.Selection) []Cell {
	cells := make([]Cell, 0)
	row.Children().Filter("th, td").Each(func(i int, sel *goquery.Selection) {
		stat, _ := sel.Attr("data-stat")
		cells = append(cells, Cell{
			Text: NormalizeText(sel.Text()),
			Stat: stat,
			Sel:  sel,
		})
	})
	return cells
}

// ColumnIndex finds the first column whose data-stat is one of stats or whose
// header text equals one of names (case-insensitive). It returns -1 when none match.
func ColumnIndex(columns []Column, stats, names []string) int {
	for _, stat := range stats {
		for i, col := range columns {
			if col.Stat != "" && strings.EqualFold(col.Stat, stat) {
				return i
			}
		}
	}
	for _, name := range names {
		for i, col := range columns {
			if strings.EqualFold(col.Name, name) {
				return i
			}
		}
	}
	return -1
}

// CellAt returns the cell for column idx. When the column has a data-stat and the
// row carries one, the match is by attribute so missing cells don't shift values.
func CellAt(cells []Cell, columns []Column, idx int) (Cell, bool) {
	if idx < 0 {
		return Cell{}, false
	}
	if idx < len(columns) && columns[idx].Stat != "" {
		for _, cell := range cells {
			if cell.Stat == columns[idx].Stat {
				return cell, true
			}
		}
		if rowHasStats(cells) {
			return Cell{}, false
		}
	}
	if idx < len(cells) {
		return cells[idx], true
	}
	return Cell{}, false
}

func rowHasStats(cells []Cell) bool {
	for _, cell := range cells {
		if cell.Stat != "" {
			return true
		}
	}
	return false
}

// LinkText returns the text of the first anchor in the cell, or the cell text
func (c Cell) LinkText() string {
	if c.Sel != nil {
		if a := c.Sel.Find("a").First(); a.Length() > 0 {
			return NormalizeText(a.Text())
		}
	}
	return c.Text
}

// PlayerID returns the player id from the first anchor href in the cell
func (c Cell) PlayerID() string {
	if c.Sel == nil {
		return ""
	}
	href, ok := c.Sel.Find("a").First().Attr("href")
	if !ok {
		return ""
	}
	return PlayerIDFromHref(href)
}

// PlayerIDFromHref extracts "jeterde01" from ".../players/j/jeterde01.shtml"
func PlayerIDFromHref(href string) string {
	matches := playerIDPattern.FindStringSubmatch(strings.TrimSpace(href))
	if matches == nil {
		return ""
	}
	return matches[1]
}

// NormalizeText collapses all whitespace, including non-breaking spaces
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	return strings.Join(strings.Fields(text), " ")
}
