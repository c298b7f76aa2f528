package notifier

import (
	"fmt"
	"os"
	"strings"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/hof-votes/internal/ballot"
)

// MaxTweetLength is the Twitter character limit
const MaxTweetLength = 280

// TwitterNotifier posts ballot summaries to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify posts one status summarizing the ballot
func (n *TwitterNotifier) Notify(b ballot.Ballot, top int) error {
	tweet := FormatSummary(b, top)
	if _, _, err := n.client.Statuses.Update(tweet, nil); err != nil {
		return fmt.Errorf("failed to post tweet for %d ballot: %w", b.Year, err)
	}
	return nil
}

// FormatSummary renders the first top candidates of a ballot as a tweet.
// Candidates at or above the induction threshold are marked elected.
func FormatSummary(b ballot.Ballot, top int) string {
	return truncateWeighted(summary(b, top), MaxTweetLength, tweetWeight)
}

func summary(b ballot.Ballot, top int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "⚾ %d Hall of Fame BBWAA results", b.Year)
	if b.TotalBallots != nil {
		fmt.Fprintf(&sb, " (%d ballots)", *b.TotalBallots)
	}
	sb.WriteString("\n\n")

	candidates := b.Candidates
	if top > 0 && len(candidates) > top {
		candidates = candidates[:top]
	}

	for _, c := range candidates {
		marker := "  "
		if in := c.Inducted(); in != nil && *in {
			marker = "✅"
		}
		pct := "n/a"
		if c.Percentage != nil {
			pct = fmt.Sprintf("%.1f%%", *c.Percentage)
		}
		fmt.Fprintf(&sb, "%s %s %s\n", marker, c.Name, pct)
	}

	if len(candidates) == 0 {
		sb.WriteString("No candidates listed.\n")
	}

	sb.WriteString("\n#HOF #Baseball")

	return sb.String()
}

// TweetLength counts s the way Twitter does: Latin and common punctuation
// weigh 1, everything else (CJK, emoji such as ⚾ and ✅) weighs 2.
func TweetLength(s string) int {
	n := 0
	for _, r := range s {
		n += tweetWeight(r)
	}
	return n
}

func tweetWeight(r rune) int {
	switch {
	case r <= 0x10FF,
		r >= 0x2000 && r <= 0x200D,
		r >= 0x2010 && r <= 0x201F,
		r >= 0x2032 && r <= 0x2037:
		return 1
	default:
		return 2
	}
}

func runeWeight(rune) int { return 1 }

// truncate shortens s to at most max runes, ending with an ellipsis
func truncate(s string, max int) string {
	return truncateWeighted(s, max, runeWeight)
}

// truncateWeighted shortens s so its total weight is at most max, ending with an ellipsis
func truncateWeighted(s string, max int, weight func(rune) int) string {
	total := 0
	for _, r := range s {
		total += weight(r)
	}
	if total <= max {
		return s
	}

	budget := max - 3
	used := 0
	var sb strings.Builder
	for _, r := range s {
		w := weight(r)
		if used+w > budget {
			break
		}
		used += w
		sb.WriteRune(r)
	}
	sb.WriteString("...")
	return sb.String()
}
