package domain

// SpellcastingClass identifies a class the platform accepts as a spell-list
// context. The platform has no unfiltered "all spells" endpoint, so the spell
// fetcher issues one request per entry at MaxLevel to obtain each class's
// complete list.
type SpellcastingClass struct {
	ID       int
	Name     string
	MaxLevel int
}

// SpellcastingClasses is the fan-out table for spell fetching. Merge ordering
// follows this slice: when the same spell arrives under several classes, the
// first class in table order seeds the record and later arrivals only extend
// the class list.
var SpellcastingClasses = []SpellcastingClass{
	{ID: 1, Name: "Bard", MaxLevel: 20},
	{ID: 2, Name: "Cleric", MaxLevel: 20},
	{ID: 3, Name: "Druid", MaxLevel: 20},
	{ID: 4, Name: "Paladin", MaxLevel: 20},
	{ID: 5, Name: "Ranger", MaxLevel: 20},
	{ID: 6, Name: "Sorcerer", MaxLevel: 20},
	{ID: 7, Name: "Warlock", MaxLevel: 20},
	{ID: 8, Name: "Wizard", MaxLevel: 20},
	{ID: 9, Name: "Artificer", MaxLevel: 20},
	{ID: 10, Name: "Fighter", MaxLevel: 20},
	{ID: 11, Name: "Rogue", MaxLevel: 20},
	{ID: 12, Name: "Monk", MaxLevel: 20},
	{ID: 13, Name: "Barbarian", MaxLevel: 20},
	{ID: 14, Name: "Blood Hunter", MaxLevel: 20},
}

// ExcludedSourceIDs lists playtest sources that are dropped from every result,
// regardless of any user-requested source filter. Exclusion runs after
// ownership computation so owning playtest material is still reported.
var ExcludedSourceIDs = map[int]bool{
	39: true, // Unearthed Arcana
}

// rarityNames maps the platform's numeric rarity ids to display labels.
// Rarity id 0 ("Mundane") is a real category, distinct from 1 ("Common").
var rarityNames = map[int]string{
	0: "Mundane",
	1: "Common",
	2: "Uncommon",
	3: "Rare",
	4: "Very Rare",
	5: "Legendary",
	6: "Artifact",
}

// RarityName resolves a numeric rarity id. Unmapped ids resolve to "Mundane"
// rather than an error sentinel, matching the platform's treatment of plain
// equipment.
func RarityName(id int) string {
	if name, ok := rarityNames[id]; ok {
		return name
	}
	return "Mundane"
}
