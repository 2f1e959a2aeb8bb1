package entities

// Sex of a character.
type Sex string

// Sex constants
const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Alignment of a character.
type Alignment string

// Alignment constants
const (
	AlignmentGood    Alignment = "Good"
	AlignmentNeutral Alignment = "Neutral"
	AlignmentEvil    Alignment = "Evil"
)

// BaseStats holds the seven authored starting attributes of a character
// template. Zero values fill to the default of 10 at instantiation time so
// hand-authored templates only list the stats they change.
type BaseStats struct {
	Might       int32 `json:"might,omitempty"`
	Intellect   int32 `json:"intellect,omitempty"`
	Personality int32 `json:"personality,omitempty"`
	Endurance   int32 `json:"endurance,omitempty"`
	Speed       int32 `json:"speed,omitempty"`
	Accuracy    int32 `json:"accuracy,omitempty"`
	Luck        int32 `json:"luck,omitempty"`
}

const defaultBaseStat = 10

func orDefault(v int32) int32 {
	if v == 0 {
		return defaultBaseStat
	}
	return v
}

// StartingEquipment maps equipment slots to item ids for a template.
type StartingEquipment struct {
	Weapon    *int32 `json:"weapon,omitempty"`
	Armor     *int32 `json:"armor,omitempty"`
	Shield    *int32 `json:"shield,omitempty"`
	Helmet    *int32 `json:"helmet,omitempty"`
	Gauntlets *int32 `json:"gauntlets,omitempty"`
	Boots     *int32 `json:"boots,omitempty"`
	Accessory *int32 `json:"accessory,omitempty"`
}

// CharacterDefinition is a content template from which runtime characters
// are spawned (premade party members, recruitable NPCs).
type CharacterDefinition struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	RaceID            string             `json:"race_id"`
	ClassID           string             `json:"class_id"`
	Sex               Sex                `json:"sex,omitempty"`
	Alignment         Alignment          `json:"alignment,omitempty"`
	BaseStats         BaseStats          `json:"base_stats,omitempty"`
	PortraitID        string             `json:"portrait_id,omitempty"`
	StartingGold      int32              `json:"starting_gold,omitempty"`
	StartingGems      int32              `json:"starting_gems,omitempty"`
	StartingFood      int32              `json:"starting_food,omitempty"`
	StartingItems     []int32            `json:"starting_items,omitempty"`
	StartingEquipment *StartingEquipment `json:"starting_equipment,omitempty"`
	Description       string             `json:"description,omitempty"`
	IsPremade         bool               `json:"is_premade,omitempty"`
	StartsInParty     bool               `json:"starts_in_party,omitempty"`
}

const defaultStartingFood = 10

// Instantiate builds a level-1 runtime character from the template. The
// class, when known, seeds hit points from its HP die maximum and spell
// points from the school's spell stat; a nil class falls back to a flat pool.
func (d *CharacterDefinition) Instantiate(class *Class) *Character {
	stats := Stats{
		Might:       NewAttributePair(orDefault(d.BaseStats.Might)),
		Intellect:   NewAttributePair(orDefault(d.BaseStats.Intellect)),
		Personality: NewAttributePair(orDefault(d.BaseStats.Personality)),
		Endurance:   NewAttributePair(orDefault(d.BaseStats.Endurance)),
		Speed:       NewAttributePair(orDefault(d.BaseStats.Speed)),
		Accuracy:    NewAttributePair(orDefault(d.BaseStats.Accuracy)),
		Luck:        NewAttributePair(orDefault(d.BaseStats.Luck)),
	}

	hp := int32(defaultBaseStat)
	sp := int32(0)
	if class != nil {
		hp = class.HPDie.Max()
		if class.SpellStat != nil {
			stat := stats.Personality.Base
			if *class.SpellStat == SpellStatIntellect {
				stat = stats.Intellect.Base
			}
			sp = SpellPoints(1, stat)
		}
	}

	food := d.StartingFood
	if food == 0 {
		food = defaultStartingFood
	}

	c := &Character{
		DefinitionID: d.ID,
		Name:         d.Name,
		RaceID:       d.RaceID,
		ClassID:      d.ClassID,
		Sex:          d.Sex,
		Alignment:    d.Alignment,
		Level:        1,
		Age:          18,
		Stats:        stats,
		HP:           NewAttributePair(hp),
		SP:           NewAttributePair(sp),
		AC:           NewAttributePair(0),
		Gold:         d.StartingGold,
		Gems:         d.StartingGems,
		Food:         food,
		PortraitID:   d.PortraitID,
	}

	for _, itemID := range d.StartingItems {
		// Starting item lists beyond the slot cap are authored mistakes;
		// the overflow is dropped rather than failing the spawn.
		_ = c.AddItem(itemID, 1)
	}
	if eq := d.StartingEquipment; eq != nil {
		c.Equipment = Equipment{
			Weapon:    eq.Weapon,
			Armor:     eq.Armor,
			Shield:    eq.Shield,
			Helmet:    eq.Helmet,
			Gauntlets: eq.Gauntlets,
			Boots:     eq.Boots,
			Accessory: eq.Accessory,
		}
	}
	return c
}

// SpellPoints computes the spell-point pool for a caster:
// level*2 + max(0, stat-10) * level / 2.
func SpellPoints(level, stat int32) int32 {
	bonus := stat - 10
	if bonus < 0 {
		bonus = 0
	}
	return level*2 + bonus*level/2
}
