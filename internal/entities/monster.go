package entities

// MonsterAttack is a single attack in a monster's routine.
type MonsterAttack struct {
	Damage DiceRoll `json:"damage"`
	Type   Element  `json:"type"`
	Effect string   `json:"effect,omitempty"`
}

// Resistances holds per-element resistance percentages (0..100).
type Resistances struct {
	Fire        int32 `json:"fire,omitempty"`
	Cold        int32 `json:"cold,omitempty"`
	Electricity int32 `json:"electricity,omitempty"`
	Acid        int32 `json:"acid,omitempty"`
	Poison      int32 `json:"poison,omitempty"`
	Fear        int32 `json:"fear,omitempty"`
	Psychic     int32 `json:"psychic,omitempty"`
	Magic       int32 `json:"magic,omitempty"`
}

// ForElement returns the resistance value matching the element, falling back
// to the magic resistance for elements without a dedicated slot.
func (r Resistances) ForElement(element Element) int32 {
	switch element {
	case ElementFire:
		return r.Fire
	case ElementCold:
		return r.Cold
	case ElementElectricity:
		return r.Electricity
	case ElementAcid:
		return r.Acid
	case ElementPoison:
		return r.Poison
	case ElementFear:
		return r.Fear
	case ElementPsychic:
		return r.Psychic
	default:
		return r.Magic
	}
}

// MonsterFlags holds special behavior toggles.
type MonsterFlags struct {
	Undead     bool `json:"undead,omitempty"`
	Regenerate bool `json:"regenerate,omitempty"`
	Advance    bool `json:"advance,omitempty"`
}

// Immunities flags elements a monster ignores entirely.
type Immunities struct {
	Fire        bool `json:"fire,omitempty"`
	Cold        bool `json:"cold,omitempty"`
	Electricity bool `json:"electricity,omitempty"`
	Acid        bool `json:"acid,omitempty"`
	Poison      bool `json:"poison,omitempty"`
	Fear        bool `json:"fear,omitempty"`
	Psychic     bool `json:"psychic,omitempty"`
}

// Immune reports whether the monster ignores the given element.
func (im Immunities) Immune(element Element) bool {
	switch element {
	case ElementFire:
		return im.Fire
	case ElementCold:
		return im.Cold
	case ElementElectricity:
		return im.Electricity
	case ElementAcid:
		return im.Acid
	case ElementPoison:
		return im.Poison
	case ElementFear:
		return im.Fear
	case ElementPsychic:
		return im.Psychic
	default:
		return false
	}
}

// Range is an inclusive numeric range used by loot tables.
type Range struct {
	Min int32 `json:"min"`
	Max int32 `json:"max"`
}

// LootTable describes what a defeated monster yields.
type LootTable struct {
	GoldRange Range   `json:"gold_range"`
	GemsRange Range   `json:"gems_range"`
	Items     []int32 `json:"items,omitempty"`
	XP        int32   `json:"xp"`
}

// Monster is a content record for a combat opponent.
type Monster struct {
	ID               int32             `json:"id"`
	Name             string            `json:"name"`
	Stats            Stats             `json:"stats"`
	HP               int32             `json:"hp"`
	AC               int32             `json:"ac"`
	Attacks          []MonsterAttack   `json:"attacks,omitempty"`
	Resistances      Resistances       `json:"resistances,omitempty"`
	Immunities       Immunities        `json:"immunities,omitempty"`
	Flags            MonsterFlags      `json:"flags,omitempty"`
	MagicResistance  int32             `json:"magic_resistance"`
	Loot             LootTable         `json:"loot"`
	ActiveConditions []ActiveCondition `json:"active_conditions,omitempty"`
}

// AddCondition attaches an active condition; a duplicate condition id
// refreshes the duration instead of stacking.
func (m *Monster) AddCondition(cond ActiveCondition) {
	for i := range m.ActiveConditions {
		if m.ActiveConditions[i].ConditionID == cond.ConditionID {
			m.ActiveConditions[i].Duration = cond.Duration
			return
		}
	}
	m.ActiveConditions = append(m.ActiveConditions, cond)
}
