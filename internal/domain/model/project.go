// Package model contains the domain entities of the showcase catalog.
package model

// Link is a labeled external URL attached to a project ("GitHub", "Demo", ...).
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project is a portfolio entry. Tags and Links are persisted as serialized
// JSON text; an absent serialized form always maps back to an empty slice,
// never nil-vs-missing ambiguity on the wire.
type Project struct {
	ID            string
	Title         string
	Description   string
	ImageURL      string
	DateISO       string
	Tags          []string
	Links         []Link
	MarketEnabled bool
}
