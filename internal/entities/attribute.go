package entities

import (
	"encoding/json"
	"fmt"
)

// AttributePair stores a permanent base value alongside the current value
// carrying temporary modifiers. Content files may encode a pair either as a
// bare number (base == current) or as an explicit {base, current} object;
// both shapes decode, and the scalar shape is written back whenever the two
// values agree.
type AttributePair struct {
	Base    int32
	Current int32
}

// NewAttributePair creates a pair with base and current set to the same value.
func NewAttributePair(value int32) AttributePair {
	return AttributePair{Base: value, Current: value}
}

// Reset restores the current value to the base value.
func (a *AttributePair) Reset() {
	a.Current = a.Base
}

// Modify applies a temporary delta to the current value, saturating at zero.
func (a *AttributePair) Modify(delta int32) {
	if delta < 0 {
		a.Current = SaturatingSub(a.Current, -delta)
		return
	}
	a.Current = SaturatingAdd(a.Current, delta)
}

type attributePairObject struct {
	Base    int32 `json:"base"`
	Current int32 `json:"current"`
}

// UnmarshalJSON accepts both the scalar and the {base, current} shape.
func (a *AttributePair) UnmarshalJSON(data []byte) error {
	var scalar int32
	if err := json.Unmarshal(data, &scalar); err == nil {
		a.Base = scalar
		a.Current = scalar
		return nil
	}

	var obj attributePairObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("attribute pair must be a number or {base, current}: %w", err)
	}
	a.Base = obj.Base
	a.Current = obj.Current
	return nil
}

// MarshalJSON writes the scalar shape when base and current agree, keeping
// hand-authored content files diff-friendly.
func (a AttributePair) MarshalJSON() ([]byte, error) {
	if a.Base == a.Current {
		return json.Marshal(a.Base)
	}
	return json.Marshal(attributePairObject{Base: a.Base, Current: a.Current})
}

// Stats holds the seven primary attributes of a character or monster.
type Stats struct {
	Might       AttributePair `json:"might"`
	Intellect   AttributePair `json:"intellect"`
	Personality AttributePair `json:"personality"`
	Endurance   AttributePair `json:"endurance"`
	Speed       AttributePair `json:"speed"`
	Accuracy    AttributePair `json:"accuracy"`
	Luck        AttributePair `json:"luck"`
}

// NewStats creates a stat block with every attribute set to the same value.
func NewStats(value int32) Stats {
	return Stats{
		Might:       NewAttributePair(value),
		Intellect:   NewAttributePair(value),
		Personality: NewAttributePair(value),
		Endurance:   NewAttributePair(value),
		Speed:       NewAttributePair(value),
		Accuracy:    NewAttributePair(value),
		Luck:        NewAttributePair(value),
	}
}
