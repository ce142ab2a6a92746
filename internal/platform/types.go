// Package platform implements the outbound HTTP client for the external
// content platform: token exchange, source config, item catalog, per-class
// spell lists, and the character-service passthrough.
//
// Wire payloads are loosely shaped. Every payload is converted into a typed
// catalog record immediately upon receipt by a single normalization function
// per entity type; the alternative property names the platform uses are
// consolidated there and nowhere else. The original JSON object is retained on
// the record so that enhancement stays additive.
package platform

import (
	"encoding/json"

	"github.com/vttbridge/relay/internal/catalog/domain"
)

// tokenPayload is the auth service's exchange response.
type tokenPayload struct {
	Token string `json:"token"`
}

// siteConfigPayload is the public config endpoint's response.
type siteConfigPayload struct {
	Sources []rawSource `json:"sources"`
}

// dataPayload wraps every character-service list response.
type dataPayload struct {
	Data []json.RawMessage `json:"data"`
}

type rawSource struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"sourceCategory"`
}

func (r rawSource) normalize() domain.Source {
	return domain.Source{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
	}
}

// rawItem covers the item fields the relay processes, including the
// alternative property names older payloads use.
type rawItem struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Snippet     string                   `json:"snippet"`
	Rarity      int                      `json:"rarity"`
	Sources     []domain.SourceReference `json:"sources"`
	SourceID    *int                     `json:"sourceId"`
}

// normalizeItem converts one raw item object into a typed record. Description
// falls back to the snippet; a legacy single sourceId becomes a one-element
// source list.
func normalizeItem(raw json.RawMessage) (domain.Item, error) {
	var r rawItem
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Item{}, err
	}

	description := r.Description
	if description == "" {
		description = r.Snippet
	}

	sources := r.Sources
	if len(sources) == 0 && r.SourceID != nil {
		sources = []domain.SourceReference{{SourceID: *r.SourceID}}
	}

	return domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: description,
		Rarity:      r.Rarity,
		Sources:     sources,
		Raw:         raw,
	}, nil
}

// rawSpellDefinition is the nested definition object spell records carry.
// Components arrive as numeric codes: 1 verbal, 2 somatic, 3 material.
type rawSpellDefinition struct {
	ID                    int64                    `json:"id"`
	Name                  string                   `json:"name"`
	Level                 int                      `json:"level"`
	School                string                   `json:"school"`
	Ritual                bool                     `json:"ritual"`
	Concentration         bool                     `json:"concentration"`
	Components            []int                    `json:"components"`
	ComponentsDescription string                   `json:"componentsDescription"`
	Sources               []domain.SourceReference `json:"sources"`
}

type rawSpell struct {
	Definition *rawSpellDefinition `json:"definition"`
}

const (
	componentVerbal   = 1
	componentSomatic  = 2
	componentMaterial = 3
)

// normalizeSpell converts one raw spell object into a typed record. Spells
// usually nest their fields under "definition"; flat records (the static
// fallback bundle's shape) are accepted too.
func normalizeSpell(raw json.RawMessage) (domain.Spell, error) {
	var r rawSpell
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.Spell{}, err
	}

	def := r.Definition
	if def == nil {
		def = &rawSpellDefinition{}
		if err := json.Unmarshal(raw, def); err != nil {
			return domain.Spell{}, err
		}
	}

	components := domain.SpellComponents{
		MaterialDescription: def.ComponentsDescription,
	}
	for _, code := range def.Components {
		switch code {
		case componentVerbal:
			components.Verbal = true
		case componentSomatic:
			components.Somatic = true
		case componentMaterial:
			components.Material = true
		}
	}

	return domain.Spell{
		ID:                    def.ID,
		Name:                  def.Name,
		Level:                 def.Level,
		School:                def.School,
		IsRitual:              def.Ritual,
		RequiresConcentration: def.Concentration,
		Components:            components,
		Sources:               def.Sources,
		Raw:                   raw,
	}, nil
}
