package entities

// SpellStat identifies which attribute feeds a class's spell points.
type SpellStat string

// Spell stat constants
const (
	SpellStatPersonality SpellStat = "Personality"
	SpellStatIntellect   SpellStat = "Intellect"
)

// Class is a content record for a playable class.
type Class struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	HPDie            DiceRoll     `json:"hp_die"`
	SpellSchool      *SpellSchool `json:"spell_school,omitempty"`
	SpellStat        *SpellStat   `json:"spell_stat,omitempty"`
	IsPureCaster     bool         `json:"is_pure_caster,omitempty"`
	SpecialAbilities []string     `json:"special_abilities,omitempty"`
	Proficiencies    []string     `json:"proficiencies,omitempty"`
}

// CanCastSchool reports whether the class casts from the given school.
func (c *Class) CanCastSchool(school SpellSchool) bool {
	return c.SpellSchool != nil && *c.SpellSchool == school
}
