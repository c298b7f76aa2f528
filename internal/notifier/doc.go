// Package notifier posts Hall of Fame ballot summaries.
//
// The notifier package formats a year's BBWAA results as a short status message and
// either posts it to Twitter (OAuth1 user credentials from the environment), sends it to a
// Telegram chat through the Bot API, or prints it in dry-run mode.
package notifier
