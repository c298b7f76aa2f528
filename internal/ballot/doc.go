// Package ballot extracts the BBWAA Hall of Fame results for one election year.
//
// The year page (awards/hof_YYYY.shtml) lists every candidate with rank, name, years on
// the ballot, votes, vote percentage and career statistics, and states the number of
// ballots cast in the section heading. Pages for years without official results are
// reported as absent, never as an error.
package ballot
