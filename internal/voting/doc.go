// Package voting extracts a player's Hall of Fame voting history from a player page.
//
// Extraction is pure: HTML text in, a VotingTable out. A page without a voting table is
// reported through the second return value rather than an error, and a cell that cannot
// be read as a number leaves the matching optional field unset instead of failing the row.
package voting
