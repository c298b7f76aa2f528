package notifier

import (
	"github.com/pfrederiksen/hof-votes/internal/ballot"
)

// Notifier defines the interface for posting ballot summaries
type Notifier interface {
	// Notify posts a summary of the top candidates on the ballot
	Notify(b ballot.Ballot, top int) error
}
