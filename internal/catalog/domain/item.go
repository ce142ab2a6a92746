package domain

import "encoding/json"

// Item is an enhanced catalog item. The original platform payload is retained
// in Raw; enhancement only adds computed fields on top of it when the record
// is marshalled, so no platform field is ever lost.
type Item struct {
	ID          int64
	Name        string
	Description string
	Rarity      int
	RarityName  string
	SourceBook  string
	Sources     []SourceReference
	Raw         json.RawMessage
}

// MarshalJSON emits the original platform object with the computed fields
// merged over it.
func (i Item) MarshalJSON() ([]byte, error) {
	merged := map[string]any{}
	if len(i.Raw) > 0 {
		if err := json.Unmarshal(i.Raw, &merged); err != nil {
			return nil, err
		}
	}
	merged["id"] = i.ID
	merged["name"] = i.Name
	merged["description"] = i.Description
	merged["rarityName"] = i.RarityName
	merged["sourceBook"] = i.SourceBook
	return json.Marshal(merged)
}

// Enhance resolves the computed fields from the source map. Name and
// description are guaranteed non-empty afterwards.
func (i *Item) Enhance(m SourceMap) {
	i.SourceBook = JoinSourceNames(i.Sources, m)
	i.RarityName = RarityName(i.Rarity)
	if i.Name == "" {
		i.Name = "Unnamed Item"
	}
	if i.Description == "" {
		i.Description = "No description available."
	}
}

// ItemResult bundles an item fetch: the enhanced entries plus the ownership
// and distribution data derived from the unfiltered platform response.
type ItemResult struct {
	Items []Item `json:"items"`
	// SourceStats counts entries per resolved source name, computed before
	// any user-requested source filter.
	SourceStats map[string]int `json:"sourceStats"`
	// OwnershipBySourceID marks a source as owned when any entry of the raw,
	// unfiltered response cites it. A request-time source filter is a display
	// preference and never narrows ownership.
	OwnershipBySourceID map[int]bool `json:"ownershipBySourceId"`
	// AllSources is the full source catalog the enhancement ran against.
	AllSources []Source `json:"allSources"`
}
