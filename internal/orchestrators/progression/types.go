package progression

import (
	"github.com/aldervale/rpg-core/internal/entities"
)

// AwardExperienceInput grants experience to a character.
type AwardExperienceInput struct {
	Character *entities.Character
	Amount    int64
}

// AwardExperienceOutput reports the character's new totals.
type AwardExperienceOutput struct {
	Experience int64
	CanLevelUp bool
}

// LevelUpInput advances a character one level.
type LevelUpInput struct {
	Character *entities.Character
}

// LevelUpOutput reports the gains of a level-up.
type LevelUpOutput struct {
	NewLevel int32
	HPGain   int32
	SPGain   int32
}

// CanCastInput asks whether a character may cast a spell right now.
type CanCastInput struct {
	Character *entities.Character
	Spell     *entities.Spell
	InCombat  bool
	IsOutdoor bool
}

// CanCastOutput is empty; a denial comes back as a coded error.
type CanCastOutput struct{}

// CastInput casts a spell, consuming its resources.
type CastInput struct {
	Character *entities.Character
	Spell     *entities.Spell
	InCombat  bool
	IsOutdoor bool
}

// CastOutput is the payload handed to combat/exploration to apply effects.
type CastOutput struct {
	Result *SpellResult
}

// SpellResult describes a successful cast.
type SpellResult struct {
	Success           bool
	Message           string
	AppliedConditions []string
}

// ApplyConditionsToCharacterInput applies a cast spell's conditions to a
// party member, rolling saving throws when the spell allows them.
type ApplyConditionsToCharacterInput struct {
	Spell  *entities.Spell
	Target *entities.Character
}

// ApplyConditionsToMonsterInput applies a cast spell's conditions to a
// monster, checking immunities and magic resistance.
type ApplyConditionsToMonsterInput struct {
	Spell  *entities.Spell
	Target *entities.Monster
}

// ApplyConditionsOutput reports which conditions landed and which were
// resisted.
type ApplyConditionsOutput struct {
	Applied  []string
	Resisted []string
}
