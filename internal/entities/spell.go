package entities

// SpellSchool identifies which casting tradition a spell belongs to.
type SpellSchool string

// Spell school constants
const (
	SchoolCleric   SpellSchool = "Cleric"
	SchoolSorcerer SpellSchool = "Sorcerer"
)

// SpellContext restricts where a spell may be cast.
type SpellContext string

// Spell context constants
const (
	ContextAnytime       SpellContext = "Anytime"
	ContextCombatOnly    SpellContext = "CombatOnly"
	ContextNonCombatOnly SpellContext = "NonCombatOnly"
	ContextOutdoorOnly   SpellContext = "OutdoorOnly"
	ContextIndoorOnly    SpellContext = "IndoorOnly"
	ContextOutdoorCombat SpellContext = "OutdoorCombat"
)

// SpellTarget identifies what a spell may be aimed at.
type SpellTarget string

// Spell target constants
const (
	TargetSelf          SpellTarget = "Self"
	TargetSingleChar    SpellTarget = "SingleChar"
	TargetAllChars      SpellTarget = "AllChars"
	TargetSingleMonster SpellTarget = "SingleMonster"
	TargetMonsterGroup  SpellTarget = "MonsterGroup"
	TargetAllMonsters   SpellTarget = "AllMonsters"
	TargetSpecific      SpellTarget = "Specific"
)

// Spell is a content record for a castable spell.
type Spell struct {
	ID                int32        `json:"id"`
	Name              string       `json:"name"`
	School            SpellSchool  `json:"school"`
	Level             int32        `json:"level"`
	SPCost            int32        `json:"sp_cost"`
	GemCost           int32        `json:"gem_cost,omitempty"`
	Context           SpellContext `json:"context"`
	Target            SpellTarget  `json:"target"`
	Damage            *DiceRoll    `json:"damage,omitempty"`
	DamageElement     Element      `json:"damage_element,omitempty"`
	Duration          int32        `json:"duration,omitempty"`
	SavingThrow       bool         `json:"saving_throw,omitempty"`
	AppliedConditions []string     `json:"applied_conditions,omitempty"`
	Description       string       `json:"description,omitempty"`
}

// AllowedIn reports whether the spell's context permits casting given the
// current combat and outdoor state.
func (s *Spell) AllowedIn(inCombat, isOutdoor bool) bool {
	switch s.Context {
	case ContextCombatOnly:
		return inCombat
	case ContextNonCombatOnly:
		return !inCombat
	case ContextOutdoorOnly:
		return isOutdoor
	case ContextIndoorOnly:
		return !isOutdoor
	case ContextOutdoorCombat:
		return inCombat && isOutdoor
	default:
		return true
	}
}
