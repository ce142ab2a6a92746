// Package domain defines the catalog records served by the relay: source
// books, items, and spells, together with the enhancement and merge rules
// applied to raw platform payloads.
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Source is a named content collection (a rulebook) that catalog entries are
// attributed to. Immutable reference data from the platform config endpoint.
type Source struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// SourceReference is a catalog entry's attribution to a source. The inline
// name is optional on the wire; resolution falls back to the source map.
type SourceReference struct {
	SourceID int    `json:"sourceId"`
	Name     string `json:"name,omitempty"`
}

// SourceMap is the derived id → name lookup used during enhancement.
type SourceMap map[int]string

// BuildSourceMap computes the id → name lookup from a source list.
func BuildSourceMap(sources []Source) SourceMap {
	m := make(SourceMap, len(sources))
	for _, s := range sources {
		m[s.ID] = s.Name
	}
	return m
}

// ResolveSourceName resolves a source reference to a human-readable name.
// Resolution order: inline name on the reference, source-map lookup, then a
// synthetic "Source {id}" fallback. The numbered fallback stays traceable
// where a bare "Unknown" would not.
func ResolveSourceName(ref SourceReference, m SourceMap) string {
	if ref.Name != "" {
		return ref.Name
	}
	if name, ok := m[ref.SourceID]; ok {
		return name
	}
	return fmt.Sprintf("Source %d", ref.SourceID)
}

// JoinSourceNames resolves every reference an entry carries and joins the
// names with ", ". An entry attributed to several books keeps all of them.
func JoinSourceNames(refs []SourceReference, m SourceMap) string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ResolveSourceName(ref, m))
	}
	return strings.Join(names, ", ")
}

// CitesAny reports whether refs include at least one of the wanted source ids.
func CitesAny(refs []SourceReference, wanted map[int]bool) bool {
	for _, ref := range refs {
		if wanted[ref.SourceID] {
			return true
		}
	}
	return false
}

// CitesExcluded reports whether refs include a playtest source. Such entries
// are dropped unconditionally; a user-requested source filter cannot re-admit
// them.
func CitesExcluded(refs []SourceReference) bool {
	return CitesAny(refs, ExcludedSourceIDs)
}

// SourceBook is the reduced source shape served by GET /api/source-books.
type SourceBook struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// SourceBooks reduces sources to the API shape, sorted by name.
func SourceBooks(sources []Source) []SourceBook {
	books := make([]SourceBook, 0, len(sources))
	for _, s := range sources {
		books = append(books, SourceBook{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].Name < books[j].Name
	})
	return books
}
