package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
	"github.com/pfrederiksen/hof-votes/internal/voting"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// ParseFormat validates a --format value
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'csv')", s)
	}
}

// WriteTable writes a player's voting table in the specified format
func WriteTable(w io.Writer, table voting.VotingTable, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, table)
	case FormatCSV:
		return writeTableCSV(w, table)
	case FormatText:
		return writeTableText(w, table)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteBallot writes a year's results in the specified format
func WriteBallot(w io.Writer, b ballot.Ballot, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, b)
	case FormatCSV:
		return writeBallotCSV(w, b)
	case FormatText:
		return writeBallotText(w, b)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteDiff writes a comparison of two elections in the specified format
func WriteDiff(w io.Writer, diff ballot.Diff, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, diff)
	case FormatCSV:
		return writeDiffCSV(w, diff)
	case FormatText:
		return writeDiffText(w, diff)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeTableText outputs a voting table as aligned columns
func writeTableText(w io.Writer, table voting.VotingTable) error {
	if table.PlayerID != "" {
		fmt.Fprintf(w, "Hall of Fame voting: %s\n\n", table.PlayerID)
	}
	if table.Len() == 0 {
		fmt.Fprintln(w, "No ballot appearances.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tVOTES\tBALLOTS\tPCT\tINDUCTED")
	for _, r := range table.Records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.Year, textInt(r.Votes), textInt(r.Ballots), textPct(r.Percentage), textBool(r.Inducted))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d years on ballot\n", table.Len())
	return nil
}

// writeTableCSV outputs one row per record with empty cells for unset values
func writeTableCSV(w io.Writer, table voting.VotingTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"player_id", "year", "votes", "ballots", "percentage", "inducted"}); err != nil {
		return err
	}
	for _, r := range table.Records {
		row := []string{
			table.PlayerID,
			strconv.Itoa(r.Year),
			csvInt(r.Votes),
			csvInt(r.Ballots),
			csvFloat(r.Percentage),
			csvBool(r.Inducted),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeBallotText outputs a year's results as aligned columns
func writeBallotText(w io.Writer, b ballot.Ballot) error {
	fmt.Fprintf(w, "%d BBWAA Hall of Fame voting", b.Year)
	if b.TotalBallots != nil {
		fmt.Fprintf(w, " (%d ballots)", *b.TotalBallots)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	if len(b.Candidates) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RK\tNAME\tYOB\tVOTES\tPCT\tELECTED")
	for _, c := range b.Candidates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Rank, c.Name, textInt(c.YearOnBallot), textInt(c.Votes), textPct(c.Percentage), textBool(c.Inducted()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d candidates, %d elected\n", len(b.Candidates), len(b.Elected()))
	return nil
}

// writeBallotCSV writes every source column followed by player_id, total_ballots and year
func writeBallotCSV(w io.Writer, b ballot.Ballot) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, b.Columns...), "player_id", "total_ballots", "year")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, c := range b.Candidates {
		row := make([]string, 0, len(header))
		for _, col := range b.Columns {
			row = append(row, c.Fields[col])
		}
		row = append(row, c.PlayerID, csvInt(b.TotalBallots), strconv.Itoa(b.Year))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeDiffText outputs debuts, departures and movers
func writeDiffText(w io.Writer, diff ballot.Diff) error {
	fmt.Fprintf(w, "BBWAA voting %d -> %d\n", diff.FromYear, diff.ToYear)

	fmt.Fprintf(w, "\nDebuts (%d):\n", len(diff.Debuts))
	for _, c := range diff.Debuts {
		fmt.Fprintf(w, "  + %s %s\n", c.Name, textPct(c.Percentage))
	}

	fmt.Fprintf(w, "\nOff the ballot (%d):\n", len(diff.Departed))
	for _, c := range diff.Departed {
		fmt.Fprintf(w, "  - %s %s\n", c.Name, textPct(c.Percentage))
	}

	fmt.Fprintf(w, "\nReturning (%d):\n", len(diff.Returning))
	if len(diff.Returning) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  NAME\t%d\t%d\tCHANGE\n", diff.FromYear, diff.ToYear)
	for _, m := range diff.Returning {
		change := "-"
		if m.Change != nil {
			change = fmt.Sprintf("%+.1f", *m.Change)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", m.Name, textPct(m.Previous), textPct(m.Current), change)
	}
	return tw.Flush()
}

// writeDiffCSV writes one row per candidate with its status
func writeDiffCSV(w io.Writer, diff ballot.Diff) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"status", "player_id", "name", "previous_pct", "current_pct", "change"}); err != nil {
		return err
	}

	rows := make([][]string, 0, len(diff.Debuts)+len(diff.Departed)+len(diff.Returning))
	for _, c := range diff.Debuts {
		rows = append(rows, []string{"debut", c.PlayerID, c.Name, "", csvFloat(c.Percentage), ""})
	}
	for _, c := range diff.Departed {
		rows = append(rows, []string{"departed", c.PlayerID, c.Name, csvFloat(c.Percentage), "", ""})
	}
	for _, m := range diff.Returning {
		rows = append(rows, []string{"returning", m.PlayerID, m.Name, csvFloat(m.Previous), csvFloat(m.Current), csvFloat(m.Change)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func textInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func textPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func textBool(v *bool) string {
	if v == nil {
		return "-"
	}
	if *v {
		return "yes"
	}
	return "no"
}

func csvInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
