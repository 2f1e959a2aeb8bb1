// Package progression implements character leveling and spell casting: the
// experience curve, HP/SP growth on level-up, cast validation, resource
// consumption, and condition application with saving throws.
package progression

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/aldervale/rpg-core/internal/orchestrators/progression Service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/repositories/content"
)

// MaxLevel caps character advancement.
const MaxLevel = 200

// Cast denial reasons, surfaced in error metadata under "reason".
const (
	ReasonUnconscious   = "unconscious"
	ReasonSilenced      = "silenced"
	ReasonWrongClass    = "wrong_class"
	ReasonLevelTooLow   = "level_too_low"
	ReasonNotEnoughSP   = "not_enough_sp"
	ReasonNotEnoughGems = "not_enough_gems"
	ReasonWrongContext  = "wrong_context"
)

// DenialReason extracts the cast denial reason from a CanCast/Cast error,
// or "" for other errors.
func DenialReason(err error) string {
	meta := errors.GetMeta(err)
	if meta == nil {
		return ""
	}
	reason, _ := meta["reason"].(string)
	return reason
}

// Service defines the interface for progression and casting operations
type Service interface {
	AwardExperience(ctx context.Context, input *AwardExperienceInput) (*AwardExperienceOutput, error)
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)
	CanCast(ctx context.Context, input *CanCastInput) (*CanCastOutput, error)
	Cast(ctx context.Context, input *CastInput) (*CastOutput, error)
	ApplyConditionsToCharacter(ctx context.Context, input *ApplyConditionsToCharacterInput) (*ApplyConditionsOutput, error)
	ApplyConditionsToMonster(ctx context.Context, input *ApplyConditionsToMonsterInput) (*ApplyConditionsOutput, error)
}

// Config holds the dependencies for the progression orchestrator
type Config struct {
	ContentStore *content.Store
	Roller       dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ContentStore == nil {
		vb.RequiredField("ContentStore")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	store  *content.Store
	roller dice.Roller
}

// NewOrchestrator creates a new progression orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		store:  cfg.ContentStore,
		roller: cfg.Roller,
	}, nil
}

// XPForLevel returns the total experience required to reach a level:
// floor(1000 * (level-1)^1.5). Level 1 requires none.
func XPForLevel(level int32) int64 {
	if level <= 1 {
		return 0
	}
	return int64(math.Floor(1000 * math.Pow(float64(level-1), 1.5)))
}

// CheckLevelUp reports whether the character has banked enough experience to
// advance.
func CheckLevelUp(c *entities.Character) bool {
	return c.Level < MaxLevel && c.Experience >= XPForLevel(c.Level+1)
}

// AwardExperience adds experience to a living character, saturating.
func (o *orchestrator) AwardExperience(ctx context.Context, input *AwardExperienceInput) (*AwardExperienceOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	c := input.Character
	if c.IsFatal() {
		return nil, errors.FailedPreconditionf("%s cannot gain experience in their condition", c.Name)
	}

	sum := c.Experience + input.Amount
	if sum < c.Experience {
		sum = math.MaxInt64
	}
	c.Experience = sum

	return &AwardExperienceOutput{
		Experience: c.Experience,
		CanLevelUp: CheckLevelUp(c),
	}, nil
}

// legacyHPDice is the classic hard-coded table used when the class is not in
// the content database.
var legacyHPDice = map[string]entities.DiceRoll{
	"knight":   {Count: 1, Sides: 10},
	"paladin":  {Count: 1, Sides: 8},
	"archer":   {Count: 1, Sides: 8},
	"cleric":   {Count: 1, Sides: 6},
	"sorcerer": {Count: 1, Sides: 4},
	"robber":   {Count: 1, Sides: 6},
}

func (o *orchestrator) hpDie(classID string) (entities.DiceRoll, error) {
	if die, ok := o.store.HPDieForClass(classID); ok {
		return die, nil
	}
	if die, ok := legacyHPDice[classID]; ok {
		return die, nil
	}
	return entities.DiceRoll{}, errors.NotFoundf("unknown class '%s'", classID)
}

func (o *orchestrator) spellStatValue(c *entities.Character) int32 {
	stat, ok := o.store.SpellStatForClass(c.ClassID)
	if !ok {
		return 0
	}
	switch stat {
	case entities.SpellStatIntellect:
		return c.Stats.Intellect.Current
	default:
		return c.Stats.Personality.Current
	}
}

// spellPointsFor recomputes the full spell-point pool for the character's
// class and level; non-casters get zero.
func (o *orchestrator) spellPointsFor(c *entities.Character) int32 {
	if _, ok := o.store.SpellStatForClass(c.ClassID); !ok {
		return 0
	}
	return entities.SpellPoints(c.Level, o.spellStatValue(c))
}

// LevelUp advances the character one level, rolling HP gain on the class hit
// die and recomputing spell points. The current SP pool only ever grows.
func (o *orchestrator) LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	c := input.Character

	if c.Level >= MaxLevel {
		return nil, errors.FailedPreconditionf("%s is already at the maximum level", c.Name)
	}
	if c.Experience < XPForLevel(c.Level+1) {
		return nil, errors.FailedPreconditionf("%s needs %d experience to reach level %d",
			c.Name, XPForLevel(c.Level+1), c.Level+1)
	}

	die, err := o.hpDie(c.ClassID)
	if err != nil {
		return nil, err
	}

	oldSP := c.SP.Base
	c.Level++

	hpGain, err := o.rollDice(die)
	if err != nil {
		c.Level--
		return nil, errors.Wrap(err, "failed to roll hit points")
	}
	if hpGain < 1 {
		hpGain = 1
	}
	c.HP.Base = entities.SaturatingAdd(c.HP.Base, hpGain)
	c.HP.Current = entities.SaturatingAdd(c.HP.Current, hpGain)

	newSP := o.spellPointsFor(c)
	spGain := int32(0)
	if newSP > oldSP {
		spGain = newSP - oldSP
		c.SP.Base = newSP
		c.SP.Current = entities.SaturatingAdd(c.SP.Current, spGain)
	}

	slog.Info("character leveled up",
		"name", c.Name,
		"level", c.Level,
		"hp_gain", hpGain,
		"sp_gain", spGain,
	)

	return &LevelUpOutput{NewLevel: c.Level, HPGain: hpGain, SPGain: spGain}, nil
}

func (o *orchestrator) rollDice(die entities.DiceRoll) (int32, error) {
	rolls, err := o.roller.RollN(int(die.Count), int(die.Sides))
	if err != nil {
		return 0, err
	}
	total := die.Bonus
	for _, r := range rolls {
		total += int32(r)
	}
	return total, nil
}

func castDenied(reason, format string, args ...interface{}) error {
	return errors.FailedPreconditionf(format, args...).WithMeta("reason", reason)
}

// CanCast checks every casting precondition in order: consciousness,
// silence, school, level, spell points, gems, and context.
func (o *orchestrator) CanCast(ctx context.Context, input *CanCastInput) (*CanCastOutput, error) {
	if input.Character == nil || input.Spell == nil {
		return nil, errors.InvalidArgument("character and spell are required")
	}
	c, spell := input.Character, input.Spell

	if !c.IsConscious() {
		return nil, castDenied(ReasonUnconscious, "%s is unconscious", c.Name)
	}
	if c.IsSilenced() {
		return nil, castDenied(ReasonSilenced, "%s is silenced", c.Name)
	}
	if !o.store.CanClassCastSchool(c.ClassID, spell.School) {
		return nil, castDenied(ReasonWrongClass, "%s cannot cast %s spells", c.Name, spell.School)
	}
	if required := o.store.RequiredLevelForSpell(c.ClassID, spell); c.Level < required {
		return nil, castDenied(ReasonLevelTooLow, "%s requires level %d to cast %s", c.Name, required, spell.Name)
	}
	if c.SP.Current < spell.SPCost {
		return nil, castDenied(ReasonNotEnoughSP, "%s does not have enough spell points", c.Name)
	}
	if c.Gems < spell.GemCost {
		return nil, castDenied(ReasonNotEnoughGems, "%s does not have enough gems", c.Name)
	}
	if !spell.AllowedIn(input.InCombat, input.IsOutdoor) {
		return nil, castDenied(ReasonWrongContext, "%s cannot be cast here", spell.Name)
	}

	return &CanCastOutput{}, nil
}

// Cast validates and then consumes the spell's resources. Effects are
// applied by the combat/exploration layers from the returned payload, so a
// failed validation never touches the caster.
func (o *orchestrator) Cast(ctx context.Context, input *CastInput) (*CastOutput, error) {
	if _, err := o.CanCast(ctx, &CanCastInput{
		Character: input.Character,
		Spell:     input.Spell,
		InCombat:  input.InCombat,
		IsOutdoor: input.IsOutdoor,
	}); err != nil {
		return nil, err
	}

	c, spell := input.Character, input.Spell
	c.SP.Current = entities.SaturatingSub(c.SP.Current, spell.SPCost)
	c.Gems = entities.SaturatingSub(c.Gems, spell.GemCost)

	slog.Info("spell cast",
		"caster", c.Name,
		"spell", spell.Name,
		"sp_remaining", c.SP.Current,
		"gems_remaining", c.Gems,
	)

	return &CastOutput{Result: &SpellResult{
		Success:           true,
		Message:           fmt.Sprintf("%s casts %s", c.Name, spell.Name),
		AppliedConditions: spell.AppliedConditions,
	}}, nil
}

// ApplyConditionsToCharacter rolls the target's element-matched resistance
// against each of the spell's conditions and attaches the ones that land.
func (o *orchestrator) ApplyConditionsToCharacter(ctx context.Context, input *ApplyConditionsToCharacterInput) (*ApplyConditionsOutput, error) {
	if input.Spell == nil || input.Target == nil {
		return nil, errors.InvalidArgument("spell and target are required")
	}

	out := &ApplyConditionsOutput{}
	for _, condID := range input.Spell.AppliedConditions {
		def, ok := o.store.Condition(condID)
		if !ok {
			slog.Warn("spell references unknown condition", "spell", input.Spell.Name, "condition", condID)
			continue
		}

		if input.Spell.SavingThrow {
			resistance := input.Target.Resistances.ForElement(def.Element())
			resisted, err := o.savingThrow(resistance)
			if err != nil {
				return nil, err
			}
			if resisted {
				out.Resisted = append(out.Resisted, condID)
				continue
			}
		}

		input.Target.AddCondition(entities.ActiveCondition{
			ConditionID: condID,
			Duration:    def.DefaultDuration,
			Magnitude:   1.0,
		})
		out.Applied = append(out.Applied, condID)
	}
	return out, nil
}

// ApplyConditionsToMonster checks elemental immunity first, then rolls the
// monster's magic resistance.
func (o *orchestrator) ApplyConditionsToMonster(ctx context.Context, input *ApplyConditionsToMonsterInput) (*ApplyConditionsOutput, error) {
	if input.Spell == nil || input.Target == nil {
		return nil, errors.InvalidArgument("spell and target are required")
	}

	out := &ApplyConditionsOutput{}
	for _, condID := range input.Spell.AppliedConditions {
		def, ok := o.store.Condition(condID)
		if !ok {
			slog.Warn("spell references unknown condition", "spell", input.Spell.Name, "condition", condID)
			continue
		}

		if input.Spell.SavingThrow {
			if input.Target.Immunities.Immune(def.Element()) {
				out.Resisted = append(out.Resisted, condID)
				continue
			}
			resisted, err := o.savingThrow(input.Target.MagicResistance)
			if err != nil {
				return nil, err
			}
			if resisted {
				out.Resisted = append(out.Resisted, condID)
				continue
			}
		}

		input.Target.AddCondition(entities.ActiveCondition{
			ConditionID: condID,
			Duration:    def.DefaultDuration,
			Magnitude:   1.0,
		})
		out.Applied = append(out.Applied, condID)
	}
	return out, nil
}

// savingThrow rolls d100 against a resistance percentage; a roll at or
// under the resistance resists.
func (o *orchestrator) savingThrow(resistance int32) (bool, error) {
	if resistance <= 0 {
		return false, nil
	}
	roll, err := o.roller.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "saving throw roll failed")
	}
	return int32(roll) <= resistance, nil
}
