// Package cli implements the command-line interface for hof-votes.
//
// The cli package provides the Cobra-based CLI with commands to fetch a player's Hall of
// Fame voting history, fetch a year's BBWAA results, extract either table from saved HTML,
// compare two elections, and announce a year's results. Output is text, JSON or CSV. Configuration comes from
// flags with HOF_* environment variable fallbacks.
package cli
