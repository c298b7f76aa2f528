package notifier

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/hof-votes/internal/ballot"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Notify prints the tweet that would be posted
func (n *DryRunNotifier) Notify(b ballot.Ballot, top int) error {
	tweet := FormatSummary(b, top)
	_, err := fmt.Fprintf(n.out, "--- Tweet ---\n%s\n\n(Length: %d characters)\n", tweet, TweetLength(tweet))
	return err
}
