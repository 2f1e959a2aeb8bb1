package entities

// ConditionEffectType discriminates condition effect variants.
type ConditionEffectType string

// Condition effect constants
const (
	EffectAttributeModifier ConditionEffectType = "AttributeModifier"
	EffectStatusEffect      ConditionEffectType = "StatusEffect"
	EffectDamageOverTime    ConditionEffectType = "DamageOverTime"
	EffectHealOverTime      ConditionEffectType = "HealOverTime"
)

// ConditionEffect is a tagged union over the effect variants.
type ConditionEffect struct {
	Type ConditionEffectType `json:"type"`

	// AttributeModifier fields
	Attribute string `json:"attribute,omitempty"`
	Value     int32  `json:"value,omitempty"`

	// StatusEffect fields
	Tag string `json:"tag,omitempty"`

	// DamageOverTime / HealOverTime fields
	Damage  DiceRoll `json:"damage,omitempty"`
	Element Element  `json:"element,omitempty"`
}

// DurationType discriminates how a condition duration counts down.
type DurationType string

// Duration constants
const (
	DurationInstant   DurationType = "Instant"
	DurationRounds    DurationType = "Rounds"
	DurationMinutes   DurationType = "Minutes"
	DurationHours     DurationType = "Hours"
	DurationPermanent DurationType = "Permanent"
)

// ConditionDuration is a tagged union over duration variants; Amount is
// meaningful for the counted variants only.
type ConditionDuration struct {
	Type   DurationType `json:"type"`
	Amount int32        `json:"amount,omitempty"`
}

// ConditionDefinition is a content record describing a status condition.
type ConditionDefinition struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Effects         []ConditionEffect `json:"effects,omitempty"`
	DefaultDuration ConditionDuration `json:"default_duration"`
	Icon            string            `json:"icon,omitempty"`
	Description     string            `json:"description,omitempty"`
}

// Element returns the damage element of the first damage-over-time effect,
// or ElementMagic when the condition carries none. Saving throws pick the
// target's resistance from this element.
func (c *ConditionDefinition) Element() Element {
	for _, effect := range c.Effects {
		if effect.Type == EffectDamageOverTime && effect.Element != "" {
			return effect.Element
		}
	}
	return ElementMagic
}

// ActiveCondition is a condition currently affecting an entity.
type ActiveCondition struct {
	ConditionID string            `json:"condition_id"`
	Duration    ConditionDuration `json:"duration"`
	Magnitude   float64           `json:"magnitude"`
}

// tick decrements a counted duration of the matching type and reports
// whether the condition has expired.
func (a *ActiveCondition) tick(kind DurationType) bool {
	if a.Duration.Type != kind {
		return false
	}
	if a.Duration.Amount > 0 {
		a.Duration.Amount--
	}
	return a.Duration.Amount <= 0
}
