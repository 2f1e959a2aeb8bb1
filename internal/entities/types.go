// Package entities defines the content model and runtime state for the
// campaign core: content records loaded from data files (items, spells,
// monsters, quests, dialogues, ...) and the mutable game state they drive
// (characters, party, roster, quest progress).
package entities

import (
	"fmt"
	"math"
)

// Position is a tile coordinate on a map.
type Position struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Direction is a cardinal facing on a map.
type Direction string

// Direction constants
const (
	DirectionNorth Direction = "North"
	DirectionEast  Direction = "East"
	DirectionSouth Direction = "South"
	DirectionWest  Direction = "West"
)

// DiceRoll describes an NdS+B roll stored in content data.
type DiceRoll struct {
	Count int32 `json:"count"`
	Sides int32 `json:"sides"`
	Bonus int32 `json:"bonus,omitempty"`
}

// String renders the conventional dice notation (e.g. "2d6+1").
func (d DiceRoll) String() string {
	if d.Bonus > 0 {
		return fmt.Sprintf("%dd%d+%d", d.Count, d.Sides, d.Bonus)
	}
	if d.Bonus < 0 {
		return fmt.Sprintf("%dd%d%d", d.Count, d.Sides, d.Bonus)
	}
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// Min returns the lowest possible result of the roll.
func (d DiceRoll) Min() int32 {
	return d.Count + d.Bonus
}

// Max returns the highest possible result of the roll.
func (d DiceRoll) Max() int32 {
	return d.Count*d.Sides + d.Bonus
}

// Element identifies a damage or resistance element.
type Element string

// Element constants
const (
	ElementFire        Element = "Fire"
	ElementCold        Element = "Cold"
	ElementElectricity Element = "Electricity"
	ElementAcid        Element = "Acid"
	ElementPoison      Element = "Poison"
	ElementFear        Element = "Fear"
	ElementPsychic     Element = "Psychic"
	ElementMagic       Element = "Magic"
	ElementPhysical    Element = "Physical"
)

// SaturatingAdd adds two values and clamps at the int32 maximum.
func SaturatingAdd(a, b int32) int32 {
	sum := int64(a) + int64(b)
	if sum > math.MaxInt32 {
		return math.MaxInt32
	}
	if sum < math.MinInt32 {
		return math.MinInt32
	}
	return int32(sum)
}

// SaturatingSub subtracts b from a and clamps at zero.
func SaturatingSub(a, b int32) int32 {
	if b >= a {
		return 0
	}
	return a - b
}
