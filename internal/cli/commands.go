package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
	"github.com/pfrederiksen/hof-votes/internal/logger"
	"github.com/pfrederiksen/hof-votes/internal/notifier"
	"github.com/pfrederiksen/hof-votes/internal/voting"
	"github.com/spf13/cobra"
)

// FirstElectionYear is the year of the first Hall of Fame election
const FirstElectionYear = 1936

func newPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <id|url>",
		Short: "Show a player's Hall of Fame voting history",
		Long: `Fetch a player page and print the Hall of Fame voting table.
The player may be given as an id (raineti01), a path (players/r/raineti01.shtml)
or a full URL. Exits with status 2 when the player never appeared on a ballot.`,
		Args: cobra.ExactArgs(1),
		RunE: runPlayer,
	}
}

func runPlayer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	table, ok, err := cfg.newScraper().FetchVotingTable(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching voting table: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w for %s", ErrNoTable, args[0])
	}

	if err := WriteTable(cmd.OutOrStdout(), table, cfg.Format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

var (
	flagSort  string
	flagLimit int
)

func newBallotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ballot <year>",
		Short: "Show the BBWAA Hall of Fame results for a year",
		Args:  cobra.ExactArgs(1),
		RunE:  runBallot,
	}
	cmd.Flags().StringVar(&flagSort, "sort", string(SortByRank), "Sort order: rank, votes or name")
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Show only the first N candidates (0 = all)")
	return cmd
}

func runBallot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	year, err := parseYear(args[0])
	if err != nil {
		return err
	}
	order, err := ParseSortOrder(flagSort)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	b, ok, err := cfg.newScraper().FetchBallot(ctx, year)
	if err != nil {
		return fmt.Errorf("fetching ballot: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no official results for %d", ErrNoTable, year)
	}

	sortCandidates(b.Candidates, order)
	if flagLimit > 0 && len(b.Candidates) > flagLimit {
		b.Candidates = b.Candidates[:flagLimit]
	}

	if err := WriteBallot(cmd.OutOrStdout(), b, cfg.Format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

var (
	flagFile string
	flagKind string
	flagYear int
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract a voting table from saved HTML",
		Long: `Read HTML from --file or stdin and extract either a player's voting table
(--kind player) or a year's BBWAA results (--kind ballot --year YYYY).`,
		Args: cobra.NoArgs,
		RunE: runParse,
	}
	cmd.Flags().StringVar(&flagFile, "file", "", "HTML file to read (default: stdin)")
	cmd.Flags().StringVar(&flagKind, "kind", "player", "Page kind: player or ballot")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Election year, recorded on ballot output")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	html, err := readInput(cmd.InOrStdin(), flagFile)
	if err != nil {
		return err
	}
	logger.Debug("Read HTML", logger.Fields{"bytes": len(html), "file": flagFile})

	switch strings.ToLower(flagKind) {
	case "player":
		table, ok := voting.Extract(html)
		if !ok {
			return ErrNoTable
		}
		return WriteTable(cmd.OutOrStdout(), table, cfg.Format)
	case "ballot":
		b, ok := ballot.Extract(html, flagYear)
		if !ok {
			return ErrNoTable
		}
		return WriteBallot(cmd.OutOrStdout(), b, cfg.Format)
	default:
		return fmt.Errorf("invalid kind: %s (must be 'player' or 'ballot')", flagKind)
	}
}

var (
	flagDryRun  bool
	flagTop     int
	flagChannel string
)

func newAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce <year>",
		Short: "Post a summary of a year's results to Twitter or Telegram",
		Long: `Fetch a year's BBWAA results and post the top candidates.
The twitter channel requires TWITTER_API_KEY, TWITTER_API_SECRET,
TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET; the telegram channel requires
TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID. Nothing is required with --dry-run.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnnounce,
	}
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the tweet without posting")
	cmd.Flags().IntVar(&flagTop, "top", 5, "Number of candidates to include")
	cmd.Flags().StringVar(&flagChannel, "channel", "twitter", "Where to post: twitter or telegram")
	return cmd
}

func runAnnounce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	year, err := parseYear(args[0])
	if err != nil {
		return err
	}

	n, err := newNotifier(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	b, ok, err := cfg.newScraper().FetchBallot(ctx, year)
	if err != nil {
		return fmt.Errorf("fetching ballot: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: no official results for %d", ErrNoTable, year)
	}

	if err := n.Notify(b, flagTop); err != nil {
		return fmt.Errorf("posting summary: %w", err)
	}
	logger.Info("Announced ballot", logger.Fields{"year": year, "channel": flagChannel, "dry_run": flagDryRun})
	return nil
}

// newNotifier picks the notifier for --channel and --dry-run
func newNotifier(out io.Writer) (notifier.Notifier, error) {
	channel := strings.ToLower(strings.TrimSpace(flagChannel))
	if channel != "twitter" && channel != "telegram" {
		return nil, fmt.Errorf("invalid channel: %s (must be 'twitter' or 'telegram')", flagChannel)
	}
	if flagDryRun {
		return notifier.NewDryRunNotifier(out), nil
	}

	if channel == "telegram" {
		tg, err := notifier.NewTelegramNotifier()
		if err != nil {
			return nil, fmt.Errorf("initializing Telegram client: %w", err)
		}
		return tg, nil
	}

	tw, err := notifier.NewTwitterNotifier()
	if err != nil {
		return nil, fmt.Errorf("initializing Twitter client: %w", err)
	}
	return tw, nil
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <from-year> <to-year>",
		Short: "Compare the BBWAA results of two elections",
		Long: `Fetch two years of BBWAA results and list debuts, departures and the
vote movement of returning candidates.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	from, err := parseYear(args[0])
	if err != nil {
		return err
	}
	to, err := parseYear(args[1])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	s := cfg.newScraper()
	ballots := make([]ballot.Ballot, 0, 2)
	for _, year := range []int{from, to} {
		b, ok, err := s.FetchBallot(ctx, year)
		if err != nil {
			return fmt.Errorf("fetching ballot: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: no official results for %d", ErrNoTable, year)
		}
		ballots = append(ballots, b)
	}

	diff := ballot.Compare(ballots[0], ballots[1])
	logger.Debug("Compared ballots", logger.Fields{
		"from":      from,
		"to":        to,
		"debuts":    len(diff.Debuts),
		"departed":  len(diff.Departed),
		"returning": len(diff.Returning),
	})

	if err := WriteDiff(cmd.OutOrStdout(), diff, cfg.Format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// parseYear validates an election year argument
func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid year: %q", arg)
	}
	if year < FirstElectionYear {
		return 0, fmt.Errorf("invalid year: %d (first election was %d)", year, FirstElectionYear)
	}
	return year, nil
}

// readInput reads the whole file, or r when path is empty
func readInput(r io.Reader, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
