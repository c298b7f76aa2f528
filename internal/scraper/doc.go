// Package scraper provides HTTP fetching for baseball-reference.com Hall of Fame pages.
//
// The scraper package resolves player identifiers, URL fragments and absolute URLs to page
// URLs, fetches them with a single GET, and hands the HTML to the voting and ballot
// extractors. Any failure to retrieve a page is returned as a *NetworkError; nothing is
// retried.
package scraper
