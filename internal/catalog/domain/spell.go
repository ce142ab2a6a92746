package domain

import (
	"encoding/json"
	"sort"
)

// SpellComponents describes a spell's casting components.
type SpellComponents struct {
	Verbal              bool   `json:"verbal"`
	Somatic             bool   `json:"somatic"`
	Material            bool   `json:"material"`
	MaterialDescription string `json:"materialDescription"`
}

// Spell is an enhanced catalog spell. Identity is the spell name: the platform
// mints a different numeric id for the same spell under each class context, so
// the id is unusable as a merge key. The original payload is retained in Raw
// and computed fields are merged over it on marshalling.
type Spell struct {
	ID                    int64
	Name                  string
	Level                 int
	School                string
	IsRitual              bool
	RequiresConcentration bool
	Components            SpellComponents
	AvailableToClasses    []string
	Sources               []SourceReference
	SourceBook            string
	Raw                   json.RawMessage
}

// MarshalJSON emits the original platform object with the computed fields
// merged over it.
func (s Spell) MarshalJSON() ([]byte, error) {
	merged := map[string]any{}
	if len(s.Raw) > 0 {
		if err := json.Unmarshal(s.Raw, &merged); err != nil {
			return nil, err
		}
	}
	merged["name"] = s.Name
	merged["school"] = s.School
	merged["isRitual"] = s.IsRitual
	merged["requiresConcentration"] = s.RequiresConcentration
	merged["components"] = s.Components
	merged["availableToClasses"] = s.AvailableToClasses
	merged["sourceBook"] = s.SourceBook
	return json.Marshal(merged)
}

// Enhance resolves the computed fields from the source map and tags the spell
// with the class context it was fetched under.
func (s *Spell) Enhance(m SourceMap, className string) {
	s.SourceBook = JoinSourceNames(s.Sources, m)
	s.AvailableToClasses = []string{className}
}

// MergeSpells deduplicates per-class spell lists by name. The first occurrence
// seeds the merged record and its scalar fields win; later occurrences under
// other classes only union their class tag into the existing record's class
// list (sorted, deduplicated). Input order is the fan-out table order, which
// makes scalar precedence deterministic. Entries without a resolvable name are
// skipped and counted.
func MergeSpells(perClass [][]Spell) (merged []Spell, skipped int) {
	index := make(map[string]int)
	merged = make([]Spell, 0)

	for _, spells := range perClass {
		for _, spell := range spells {
			if spell.Name == "" {
				skipped++
				continue
			}

			at, seen := index[spell.Name]
			if !seen {
				index[spell.Name] = len(merged)
				merged = append(merged, spell)
				continue
			}
			merged[at].AvailableToClasses = unionSorted(
				merged[at].AvailableToClasses,
				spell.AvailableToClasses,
			)
		}
	}
	return merged, skipped
}

// unionSorted merges two class lists into a sorted, deduplicated union.
func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, lists := range [][]string{a, b} {
		for _, v := range lists {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

// SpellResult bundles a spell fetch across every class context.
type SpellResult struct {
	Spells []Spell `json:"spells"`
	// SourceStats counts entries per resolved source name, computed before
	// any user-requested source filter.
	SourceStats map[string]int `json:"sourceStats"`
	// OwnershipBySourceID marks a source as owned when any merged entry of
	// the pre-filter response cites it.
	OwnershipBySourceID map[int]bool `json:"ownershipBySourceId"`
	// AllSources is the full source catalog the enhancement ran against.
	AllSources []Source `json:"allSources"`
	// SkippedNameless counts entries dropped during the merge because they
	// carried no resolvable name. Diagnostic only.
	SkippedNameless int `json:"skippedNameless"`
}
