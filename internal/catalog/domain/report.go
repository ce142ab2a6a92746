package domain

import "sort"

// SourceReportRow is one line of the combined item/spell breakdown.
type SourceReportRow struct {
	SourceID   int    `json:"sourceId"`
	SourceName string `json:"sourceName"`
	ItemCount  int    `json:"itemCount"`
	SpellCount int    `json:"spellCount"`
	Owned      bool   `json:"owned"`
}

// BuildSourceReport cross-references item and spell results into a per-source
// breakdown. It is a diagnostic aid off the critical request path: it never
// fails, and tolerates nil inputs by treating them as empty.
//
// Rows are sorted by total content volume (items + spells) descending, then by
// name ascending.
func BuildSourceReport(items *ItemResult, spells *SpellResult) []SourceReportRow {
	rows := make(map[int]*SourceReportRow)
	sourceMap := SourceMap{}

	ensure := func(id int) *SourceReportRow {
		if row, ok := rows[id]; ok {
			return row
		}
		row := &SourceReportRow{
			SourceID:   id,
			SourceName: ResolveSourceName(SourceReference{SourceID: id}, sourceMap),
		}
		rows[id] = row
		return row
	}

	if items != nil {
		sourceMap = BuildSourceMap(items.AllSources)
		for _, item := range items.Items {
			for _, ref := range item.Sources {
				ensure(ref.SourceID).ItemCount++
			}
		}
		for id, owned := range items.OwnershipBySourceID {
			if owned {
				ensure(id).Owned = true
			}
		}
	}

	if spells != nil {
		if len(sourceMap) == 0 {
			sourceMap = BuildSourceMap(spells.AllSources)
		}
		for _, spell := range spells.Spells {
			for _, ref := range spell.Sources {
				ensure(ref.SourceID).SpellCount++
			}
		}
		for id, owned := range spells.OwnershipBySourceID {
			if owned {
				ensure(id).Owned = true
			}
		}
	}

	// Re-resolve names now that the widest source map is known.
	for id, row := range rows {
		row.SourceName = ResolveSourceName(SourceReference{SourceID: id}, sourceMap)
	}

	out := make([]SourceReportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		ti := out[i].ItemCount + out[i].SpellCount
		tj := out[j].ItemCount + out[j].SpellCount
		if ti != tj {
			return ti > tj
		}
		return out[i].SourceName < out[j].SourceName
	})
	return out
}
