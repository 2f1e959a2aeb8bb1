package entities

import (
	"github.com/aldervale/rpg-core/internal/errors"
)

// Condition is the bitflag set of classic status ailments on a character.
type Condition uint8

// Condition bitflags. Stone and Eradicated are composite values carried over
// from the classic encoding.
const (
	ConditionFine        Condition = 0
	ConditionAsleep      Condition = 1
	ConditionBlinded     Condition = 2
	ConditionSilenced    Condition = 4
	ConditionDiseased    Condition = 8
	ConditionPoisoned    Condition = 16
	ConditionParalyzed   Condition = 32
	ConditionUnconscious Condition = 64
	ConditionDead        Condition = 128
	ConditionStone       Condition = 160
	ConditionEradicated  Condition = 255
)

// IsFatal reports whether the set contains a condition the character cannot
// recover from without outside help (dead, stone, eradicated).
func (c Condition) IsFatal() bool {
	return c >= ConditionDead
}

// IsBad reports whether the set contains an incapacitating condition.
func (c Condition) IsBad() bool {
	return c >= ConditionParalyzed
}

// Has reports whether the given flag is set.
func (c Condition) Has(flag Condition) bool {
	return c&flag != 0
}

// InventorySlot holds one carried item and its remaining charges.
type InventorySlot struct {
	ItemID  int32 `json:"item_id"`
	Charges int32 `json:"charges"`
}

// InventorySize is the number of carry slots per character.
const InventorySize = 6

// Equipment holds the worn item per equipment slot.
type Equipment struct {
	Weapon    *int32 `json:"weapon,omitempty"`
	Armor     *int32 `json:"armor,omitempty"`
	Shield    *int32 `json:"shield,omitempty"`
	Helmet    *int32 `json:"helmet,omitempty"`
	Gauntlets *int32 `json:"gauntlets,omitempty"`
	Boots     *int32 `json:"boots,omitempty"`
	Accessory *int32 `json:"accessory,omitempty"`
}

// FoodMax caps the food counter per character.
const FoodMax = 40

// Character is a live party or roster member instantiated from a
// CharacterDefinition.
type Character struct {
	DefinitionID     string            `json:"definition_id,omitempty"`
	Name             string            `json:"name"`
	RaceID           string            `json:"race_id"`
	ClassID          string            `json:"class_id"`
	Sex              Sex               `json:"sex,omitempty"`
	Alignment        Alignment         `json:"alignment,omitempty"`
	Level            int32             `json:"level"`
	Experience       int64             `json:"experience"`
	Age              int32             `json:"age,omitempty"`
	Stats            Stats             `json:"stats"`
	HP               AttributePair     `json:"hp"`
	SP               AttributePair     `json:"sp"`
	AC               AttributePair     `json:"ac"`
	Inventory        []InventorySlot   `json:"inventory,omitempty"`
	Equipment        Equipment         `json:"equipment,omitempty"`
	Spellbook        []int32           `json:"spellbook,omitempty"`
	Conditions       Condition         `json:"conditions,omitempty"`
	ActiveConditions []ActiveCondition `json:"active_conditions,omitempty"`
	Resistances      Resistances       `json:"resistances,omitempty"`
	QuestFlags       []string          `json:"quest_flags,omitempty"`
	Gold             int32             `json:"gold,omitempty"`
	Gems             int32             `json:"gems,omitempty"`
	Food             int32             `json:"food,omitempty"`
	PortraitID       string            `json:"portrait_id,omitempty"`
}

// IsConscious reports whether the character can act.
func (c *Character) IsConscious() bool {
	return !c.Conditions.Has(ConditionUnconscious) && !c.Conditions.IsFatal()
}

// IsSilenced reports whether the character is prevented from casting.
func (c *Character) IsSilenced() bool {
	return c.Conditions.Has(ConditionSilenced)
}

// IsFatal reports whether the character is dead, stone, or eradicated.
func (c *Character) IsFatal() bool {
	return c.Conditions.IsFatal()
}

// AddItem places quantity charges of an item into the inventory, stacking
// onto an existing slot for the same item before opening a new one. Returns
// ResourceExhausted when no slot is free.
func (c *Character) AddItem(itemID, quantity int32) error {
	if quantity <= 0 {
		return nil
	}
	for i := range c.Inventory {
		if c.Inventory[i].ItemID == itemID {
			c.Inventory[i].Charges = SaturatingAdd(c.Inventory[i].Charges, quantity)
			return nil
		}
	}
	if len(c.Inventory) >= InventorySize {
		return errors.ResourceExhaustedf("%s's inventory is full", c.Name)
	}
	c.Inventory = append(c.Inventory, InventorySlot{ItemID: itemID, Charges: quantity})
	return nil
}

// RemoveItem consumes quantity charges of an item across inventory slots,
// dropping slots that run out. Returns NotFound when the character carries
// fewer charges than requested; no charges are consumed in that case.
func (c *Character) RemoveItem(itemID, quantity int32) error {
	if quantity <= 0 {
		return nil
	}
	if c.CountItem(itemID) < quantity {
		return errors.NotFoundf("%s does not carry %d of item %d", c.Name, quantity, itemID)
	}

	remaining := quantity
	kept := c.Inventory[:0]
	for _, slot := range c.Inventory {
		if slot.ItemID == itemID && remaining > 0 {
			take := slot.Charges
			if take > remaining {
				take = remaining
			}
			slot.Charges -= take
			remaining -= take
			if slot.Charges <= 0 {
				continue
			}
		}
		kept = append(kept, slot)
	}
	c.Inventory = kept
	return nil
}

// CountItem sums charges of an item across all inventory slots.
func (c *Character) CountItem(itemID int32) int32 {
	var total int32
	for _, slot := range c.Inventory {
		if slot.ItemID == itemID {
			total = SaturatingAdd(total, slot.Charges)
		}
	}
	return total
}

// AddCondition attaches an active condition; a duplicate condition id
// refreshes the duration instead of stacking.
func (c *Character) AddCondition(cond ActiveCondition) {
	for i := range c.ActiveConditions {
		if c.ActiveConditions[i].ConditionID == cond.ConditionID {
			c.ActiveConditions[i].Duration = cond.Duration
			return
		}
	}
	c.ActiveConditions = append(c.ActiveConditions, cond)
}

// TickRound advances round-counted conditions and drops expired ones.
func (c *Character) TickRound() {
	c.tickConditions(DurationRounds)
}

// TickMinute advances minute-counted conditions and drops expired ones.
func (c *Character) TickMinute() {
	c.tickConditions(DurationMinutes)
}

// TickHour advances hour-counted conditions and drops expired ones.
func (c *Character) TickHour() {
	c.tickConditions(DurationHours)
}

func (c *Character) tickConditions(kind DurationType) {
	kept := c.ActiveConditions[:0]
	for i := range c.ActiveConditions {
		if c.ActiveConditions[i].tick(kind) {
			continue
		}
		kept = append(kept, c.ActiveConditions[i])
	}
	c.ActiveConditions = kept
}

// AwardGold adds gold to the character, saturating.
func (c *Character) AwardGold(amount int32) {
	c.Gold = SaturatingAdd(c.Gold, amount)
}
