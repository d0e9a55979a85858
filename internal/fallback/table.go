// Package fallback holds the canned counselor answers served when no
// generative provider produces a reply.
package fallback

import "strings"

// Entry maps a lower-case keyword to a canned response.
type Entry struct {
	Keyword  string
	Response string
}

// Table is an ordered keyword table. Order decides the winner when a message
// contains more than one keyword.
type Table struct {
	entries []Entry
	def     string
}

// New builds a table from entries in priority order. Keywords are lower-cased.
func New(entries []Entry, defaultResponse string) *Table {
	cp := make([]Entry, len(entries))
	for i, e := range entries {
		cp[i] = Entry{Keyword: strings.ToLower(e.Keyword), Response: e.Response}
	}
	return &Table{entries: cp, def: defaultResponse}
}

// Default returns the counselor table.
func Default() *Table {
	return New(counselorEntries, DefaultMessage)
}

// Match returns the response of the first entry whose keyword occurs in message.
func (t *Table) Match(message string) (Entry, bool) {
	lower := strings.ToLower(message)
	for _, e := range t.entries {
		if strings.Contains(lower, e.Keyword) {
			return e, true
		}
	}
	return Entry{}, false
}

// Respond never returns an empty string.
func (t *Table) Respond(message string) string {
	if e, ok := t.Match(message); ok {
		return e.Response
	}
	return t.def
}

// Entries returns a copy of the table in priority order.
func (t *Table) Entries() []Entry {
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}
