package entities

import (
	"github.com/aldervale/rpg-core/internal/errors"
)

// ItemKindType discriminates the item kind variants.
type ItemKindType string

// Item kind constants
const (
	ItemKindWeapon     ItemKindType = "Weapon"
	ItemKindArmor      ItemKindType = "Armor"
	ItemKindAccessory  ItemKindType = "Accessory"
	ItemKindConsumable ItemKindType = "Consumable"
	ItemKindAmmo       ItemKindType = "Ammo"
	ItemKindQuest      ItemKindType = "Quest"
)

// WeaponClass restricts which classes may wield a weapon.
type WeaponClass string

// Weapon class constants
const (
	WeaponClassAny     WeaponClass = "Any"
	WeaponClassMelee   WeaponClass = "Melee"
	WeaponClassMissile WeaponClass = "Missile"
)

// ArmorClass restricts which classes may wear armor.
type ArmorClass string

// Armor class constants
const (
	ArmorClassAny    ArmorClass = "Any"
	ArmorClassLight  ArmorClass = "Light"
	ArmorClassMedium ArmorClass = "Medium"
	ArmorClassHeavy  ArmorClass = "Heavy"
)

// ItemKind is a tagged union over the item variants. Type selects the
// variant; the remaining fields are meaningful only for their variant.
type ItemKind struct {
	Type ItemKindType `json:"type"`

	// Weapon fields
	Damage DiceRoll    `json:"damage,omitempty"`
	Bonus  int32       `json:"bonus,omitempty"`
	Hands  int32       `json:"hands,omitempty"`
	Class  WeaponClass `json:"class,omitempty"`

	// Armor fields
	ArmorBonus int32      `json:"armor_bonus,omitempty"`
	Weight     int32      `json:"weight,omitempty"`
	ArmorKind  ArmorClass `json:"armor_kind,omitempty"`

	// Consumable fields
	Effect string `json:"effect,omitempty"`
}

// StatBonus is a permanent attribute bonus granted while an item is equipped.
type StatBonus struct {
	Attribute string `json:"attribute"`
	Value     int32  `json:"value"`
}

// Item is a content record for anything a character can carry or equip.
type Item struct {
	ID                   int32       `json:"id"`
	Name                 string      `json:"name"`
	Kind                 ItemKind    `json:"kind"`
	BaseCost             int32       `json:"base_cost"`
	SellCost             int32       `json:"sell_cost"`
	AlignmentRestriction string      `json:"alignment_restriction,omitempty"`
	Bonuses              []StatBonus `json:"bonuses,omitempty"`
	SpellEffect          *int32      `json:"spell_effect,omitempty"`
	Charges              int32       `json:"charges,omitempty"`
	Cursed               bool        `json:"cursed,omitempty"`
	RequiredProficiency  string      `json:"required_proficiency,omitempty"`
	Tags                 []string    `json:"tags,omitempty"`
}

// NewItem returns an item with the fields every authored record starts from.
func NewItem(id int32, name string) Item {
	return Item{
		ID:   id,
		Name: name,
		Kind: ItemKind{Type: ItemKindConsumable},
	}
}

// IsMagical reports whether the item carries any enchantment: charges, stat
// bonuses, or an attached spell effect.
func (i *Item) IsMagical() bool {
	return i.Charges > 0 || len(i.Bonuses) > 0 || i.SpellEffect != nil
}

// IsWeapon reports whether the item is a weapon.
func (i *Item) IsWeapon() bool {
	return i.Kind.Type == ItemKindWeapon
}

// Validate checks the struct-level invariants of the record.
func (i *Item) Validate() error {
	if i.Kind.Type == ItemKindWeapon {
		if i.Kind.Damage.Count < 1 {
			return errors.InvalidArgumentf("item %d: weapon damage dice count must be >= 1", i.ID)
		}
		if i.Kind.Damage.Sides < 2 {
			return errors.InvalidArgumentf("item %d: weapon damage dice sides must be >= 2", i.ID)
		}
	}
	return nil
}
