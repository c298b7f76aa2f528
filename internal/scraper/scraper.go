package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
	"github.com/pfrederiksen/hof-votes/internal/logger"
	"github.com/pfrederiksen/hof-votes/internal/voting"
)

const (
	BaseURL     = "https://www.baseball-reference.com/"
	UserAgent   = "hof-votes/1.0 (github.com/pfrederiksen/hof-votes)"
	Timeout     = 30 * time.Second
	MaxBodySize = int64(10 * 1024 * 1024)
)

// ErrInvalidIdentifier is returned for identifiers that can't be turned into a page URL
var ErrInvalidIdentifier = errors.New("invalid player identifier")

var playerIDPattern = regexp.MustCompile(`^[A-Za-z.'-]+\d{2}$`)

// NetworkError reports a page that could not be retrieved.
// StatusCode is zero when no response was received.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Scraper handles fetching Hall of Fame pages
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL points the scraper at another host, e.g. a test server
func WithBaseURL(base string) Option {
	return func(s *Scraper) {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		s.baseURL = base
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:   BaseURL,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlayerURL resolves a player id ("jeterde01"), a URL fragment
// ("players/j/jeterde01.shtml") or an absolute URL to the player page URL
func (s *Scraper) PlayerURL(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}

	if strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://") {
		u, err := url.Parse(identifier)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
		}
		return u.String(), nil
	}

	if strings.Contains(identifier, "/") || strings.HasSuffix(identifier, ".shtml") {
		return s.resolve(strings.TrimPrefix(identifier, "/"))
	}

	if !playerIDPattern.MatchString(identifier) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, identifier)
	}
	first := strings.ToLower(identifier[:1])
	return s.resolve(fmt.Sprintf("players/%s/%s.shtml", first, identifier))
}

// BallotURL returns the BBWAA results page for an election year
func (s *Scraper) BallotURL(year int) string {
	u, err := s.resolve(fmt.Sprintf("awards/hof_%d.shtml", year))
	if err != nil {
		return s.baseURL + fmt.Sprintf("awards/hof_%d.shtml", year)
	}
	return u
}

func (s *Scraper) resolve(path string) (string, error) {
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, path)
	}
	return base.ResolveReference(ref).String(), nil
}

// Fetch retrieves a page and returns its HTML. Every failure is a *NetworkError.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("scraper.fetch", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &NetworkError{URL: pageURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	logger.Debug("Fetching page", logger.Fields{"url": pageURL})

	resp, err := s.client.Do(req)
	if err != nil {
		logger.IncrCounter("scraper.errors")
		return "", &NetworkError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.IncrCounter("scraper.errors")
		return "", &NetworkError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		logger.IncrCounter("scraper.errors")
		return "", &NetworkError{URL: pageURL, Err: fmt.Errorf("reading body: %w", err)}
	}

	logger.IncrCounter("scraper.pages")
	logger.Debug("Fetched page", logger.Fields{
		"url":    pageURL,
		"status": resp.StatusCode,
		"bytes":  len(body),
	})

	return string(body), nil
}

// FetchPlayerPage fetches the HTML of a player page
func (s *Scraper) FetchPlayerPage(ctx context.Context, identifier string) (string, error) {
	pageURL, err := s.PlayerURL(identifier)
	if err != nil {
		return "", err
	}
	return s.Fetch(ctx, pageURL)
}

// FetchBallotPage fetches the HTML of a year results page
func (s *Scraper) FetchBallotPage(ctx context.Context, year int) (string, error) {
	return s.Fetch(ctx, s.BallotURL(year))
}

// FetchVotingTable fetches a player page and extracts its voting table.
// ok is false when the page has no voting table.
func (s *Scraper) FetchVotingTable(ctx context.Context, identifier string) (table voting.VotingTable, ok bool, err error) {
	html, err := s.FetchPlayerPage(ctx, identifier)
	if err != nil {
		return voting.VotingTable{}, false, err
	}

	table, ok = voting.Extract(html)
	if !ok {
		logger.Info("No voting table on page", logger.Fields{"player": identifier})
		return voting.VotingTable{}, false, nil
	}
	if table.PlayerID == "" && playerIDPattern.MatchString(identifier) {
		table.PlayerID = identifier
	}

	logger.IncrCounter("tables.extracted")
	return table, true, nil
}

// FetchBallot fetches and extracts the BBWAA results for a year.
// ok is false when the year has no official results.
func (s *Scraper) FetchBallot(ctx context.Context, year int) (b ballot.Ballot, ok bool, err error) {
	html, err := s.FetchBallotPage(ctx, year)
	if err != nil {
		return ballot.Ballot{}, false, err
	}

	b, ok = ballot.Extract(html, year)
	if !ok {
		logger.Info("No voting results for year", logger.Fields{"year": year})
		return ballot.Ballot{}, false, nil
	}

	logger.IncrCounter("ballots.extracted")
	return b, true, nil
}
