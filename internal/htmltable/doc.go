// Package htmltable provides typed lookups over HTML tables for the Hall of Fame extractors.
//
// The htmltable package wraps goquery with the few queries the extractors need: the first
// table matching an id (including tables that baseball-reference ships inside HTML comments),
// header-to-column mapping by data-stat attribute or header text, per-row cell access, and
// lenient numeric coercion where an unparsable cell yields "unset" instead of an error.
package htmltable
