// Package tagscrape fetches a list of web pages, extracts the text of a
// configurable set of HTML tags, optionally splits that text into
// sentence-like fragments, and drops trivially short fragments.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, rod/, fs/).
package tagscrape
