// Package content provides the in-memory content database: per-kind keyed
// tables populated at campaign load and treated as read-only during play.
package content

import (
	"math"
	"sort"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
)

// table is a keyed record store with deterministic iteration order.
type table[K int32 | string, V any] struct {
	records map[K]V
	keys    []K
}

func newTable[K int32 | string, V any]() *table[K, V] {
	return &table[K, V]{records: make(map[K]V)}
}

func (t *table[K, V]) add(kind string, key K, value V) error {
	if _, exists := t.records[key]; exists {
		return errors.AlreadyExistsf("duplicate %s id %v", kind, key)
	}
	t.records[key] = value
	t.keys = append(t.keys, key)
	return nil
}

func (t *table[K, V]) get(key K) (V, bool) {
	v, ok := t.records[key]
	return v, ok
}

func (t *table[K, V]) remove(key K) bool {
	if _, exists := t.records[key]; !exists {
		return false
	}
	delete(t.records, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return true
}

// sortedKeys returns the keys in ascending order for deterministic scans.
func (t *table[K, V]) sortedKeys() []K {
	keys := make([]K, len(t.keys))
	copy(keys, t.keys)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (t *table[K, V]) len() int {
	return len(t.records)
}

// Store is the content database for one loaded campaign.
type Store struct {
	items      *table[int32, *entities.Item]
	spells     *table[int32, *entities.Spell]
	monsters   *table[int32, *entities.Monster]
	maps       *table[int32, *entities.Map]
	quests     *table[int32, *entities.Quest]
	dialogues  *table[int32, *entities.DialogueTree]
	conditions *table[string, *entities.ConditionDefinition]
	npcs       *table[string, *entities.NPC]
	characters *table[string, *entities.CharacterDefinition]
	races      *table[string, *entities.Race]
	classes    *table[string, *entities.Class]
	profs      *table[string, *entities.Proficiency]
}

// NewStore creates an empty content database.
func NewStore() *Store {
	return &Store{
		items:      newTable[int32, *entities.Item](),
		spells:     newTable[int32, *entities.Spell](),
		monsters:   newTable[int32, *entities.Monster](),
		maps:       newTable[int32, *entities.Map](),
		quests:     newTable[int32, *entities.Quest](),
		dialogues:  newTable[int32, *entities.DialogueTree](),
		conditions: newTable[string, *entities.ConditionDefinition](),
		npcs:       newTable[string, *entities.NPC](),
		characters: newTable[string, *entities.CharacterDefinition](),
		races:      newTable[string, *entities.Race](),
		classes:    newTable[string, *entities.Class](),
		profs:      newTable[string, *entities.Proficiency](),
	}
}

// AddItem stores an item; a duplicate id fails with AlreadyExists.
func (s *Store) AddItem(item *entities.Item) error {
	return s.items.add("item", item.ID, item)
}

// Item returns the item with the given id.
func (s *Store) Item(id int32) (*entities.Item, bool) { return s.items.get(id) }

// RemoveItem deletes an item, reporting whether it existed.
func (s *Store) RemoveItem(id int32) bool { return s.items.remove(id) }

// ItemIDs returns all item ids in ascending order.
func (s *Store) ItemIDs() []int32 { return s.items.sortedKeys() }

// AddSpell stores a spell; a duplicate id fails with AlreadyExists.
func (s *Store) AddSpell(spell *entities.Spell) error {
	return s.spells.add("spell", spell.ID, spell)
}

// Spell returns the spell with the given id.
func (s *Store) Spell(id int32) (*entities.Spell, bool) { return s.spells.get(id) }

// RemoveSpell deletes a spell, reporting whether it existed.
func (s *Store) RemoveSpell(id int32) bool { return s.spells.remove(id) }

// SpellIDs returns all spell ids in ascending order.
func (s *Store) SpellIDs() []int32 { return s.spells.sortedKeys() }

// SpellByName returns the first spell with the given name in id order.
func (s *Store) SpellByName(name string) (*entities.Spell, bool) {
	for _, id := range s.spells.sortedKeys() {
		spell, _ := s.spells.get(id)
		if spell.Name == name {
			return spell, true
		}
	}
	return nil, false
}

// AddMonster stores a monster; a duplicate id fails with AlreadyExists.
func (s *Store) AddMonster(monster *entities.Monster) error {
	return s.monsters.add("monster", monster.ID, monster)
}

// Monster returns the monster with the given id.
func (s *Store) Monster(id int32) (*entities.Monster, bool) { return s.monsters.get(id) }

// RemoveMonster deletes a monster, reporting whether it existed.
func (s *Store) RemoveMonster(id int32) bool { return s.monsters.remove(id) }

// MonsterIDs returns all monster ids in ascending order.
func (s *Store) MonsterIDs() []int32 { return s.monsters.sortedKeys() }

// AddMap stores a map; a duplicate id fails with AlreadyExists.
func (s *Store) AddMap(m *entities.Map) error {
	return s.maps.add("map", m.ID, m)
}

// Map returns the map with the given id.
func (s *Store) Map(id int32) (*entities.Map, bool) { return s.maps.get(id) }

// RemoveMap deletes a map, reporting whether it existed.
func (s *Store) RemoveMap(id int32) bool { return s.maps.remove(id) }

// MapIDs returns all map ids in ascending order.
func (s *Store) MapIDs() []int32 { return s.maps.sortedKeys() }

// AddQuest stores a quest; a duplicate id fails with AlreadyExists.
func (s *Store) AddQuest(quest *entities.Quest) error {
	return s.quests.add("quest", quest.ID, quest)
}

// Quest returns the quest with the given id.
func (s *Store) Quest(id int32) (*entities.Quest, bool) { return s.quests.get(id) }

// RemoveQuest deletes a quest, reporting whether it existed.
func (s *Store) RemoveQuest(id int32) bool { return s.quests.remove(id) }

// QuestIDs returns all quest ids in ascending order.
func (s *Store) QuestIDs() []int32 { return s.quests.sortedKeys() }

// AddDialogue stores a dialogue tree; a duplicate id fails with AlreadyExists.
func (s *Store) AddDialogue(tree *entities.DialogueTree) error {
	return s.dialogues.add("dialogue", tree.ID, tree)
}

// Dialogue returns the dialogue tree with the given id.
func (s *Store) Dialogue(id int32) (*entities.DialogueTree, bool) { return s.dialogues.get(id) }

// RemoveDialogue deletes a dialogue tree, reporting whether it existed.
func (s *Store) RemoveDialogue(id int32) bool { return s.dialogues.remove(id) }

// DialogueIDs returns all dialogue ids in ascending order.
func (s *Store) DialogueIDs() []int32 { return s.dialogues.sortedKeys() }

// AddCondition stores a condition definition; a duplicate id fails with
// AlreadyExists.
func (s *Store) AddCondition(cond *entities.ConditionDefinition) error {
	return s.conditions.add("condition", cond.ID, cond)
}

// Condition returns the condition definition with the given id.
func (s *Store) Condition(id string) (*entities.ConditionDefinition, bool) {
	return s.conditions.get(id)
}

// RemoveCondition deletes a condition, reporting whether it existed.
func (s *Store) RemoveCondition(id string) bool { return s.conditions.remove(id) }

// ConditionIDs returns all condition ids in ascending order.
func (s *Store) ConditionIDs() []string { return s.conditions.sortedKeys() }

// AddNPC stores an NPC; a duplicate id fails with AlreadyExists.
func (s *Store) AddNPC(npc *entities.NPC) error {
	return s.npcs.add("npc", npc.ID, npc)
}

// NPC returns the NPC with the given id.
func (s *Store) NPC(id string) (*entities.NPC, bool) { return s.npcs.get(id) }

// RemoveNPC deletes an NPC, reporting whether it existed.
func (s *Store) RemoveNPC(id string) bool { return s.npcs.remove(id) }

// NPCIDs returns all NPC ids in ascending order.
func (s *Store) NPCIDs() []string { return s.npcs.sortedKeys() }

// AddCharacter stores a character template; a duplicate id fails with
// AlreadyExists.
func (s *Store) AddCharacter(def *entities.CharacterDefinition) error {
	return s.characters.add("character", def.ID, def)
}

// Character returns the character template with the given id.
func (s *Store) Character(id string) (*entities.CharacterDefinition, bool) {
	return s.characters.get(id)
}

// RemoveCharacter deletes a character template, reporting whether it existed.
func (s *Store) RemoveCharacter(id string) bool { return s.characters.remove(id) }

// CharacterIDs returns all character template ids in ascending order.
func (s *Store) CharacterIDs() []string { return s.characters.sortedKeys() }

// AddRace stores a race; a duplicate id fails with AlreadyExists.
func (s *Store) AddRace(race *entities.Race) error {
	return s.races.add("race", race.ID, race)
}

// Race returns the race with the given id.
func (s *Store) Race(id string) (*entities.Race, bool) { return s.races.get(id) }

// RemoveRace deletes a race, reporting whether it existed.
func (s *Store) RemoveRace(id string) bool { return s.races.remove(id) }

// RaceIDs returns all race ids in ascending order.
func (s *Store) RaceIDs() []string { return s.races.sortedKeys() }

// AddClass stores a class; a duplicate id fails with AlreadyExists.
func (s *Store) AddClass(class *entities.Class) error {
	return s.classes.add("class", class.ID, class)
}

// Class returns the class with the given id.
func (s *Store) Class(id string) (*entities.Class, bool) { return s.classes.get(id) }

// RemoveClass deletes a class, reporting whether it existed.
func (s *Store) RemoveClass(id string) bool { return s.classes.remove(id) }

// ClassIDs returns all class ids in ascending order.
func (s *Store) ClassIDs() []string { return s.classes.sortedKeys() }

// AddProficiency stores a proficiency; a duplicate id fails with
// AlreadyExists.
func (s *Store) AddProficiency(prof *entities.Proficiency) error {
	return s.profs.add("proficiency", prof.ID, prof)
}

// Proficiency returns the proficiency with the given id.
func (s *Store) Proficiency(id string) (*entities.Proficiency, bool) { return s.profs.get(id) }

// RemoveProficiency deletes a proficiency, reporting whether it existed.
func (s *Store) RemoveProficiency(id string) bool { return s.profs.remove(id) }

// ProficiencyIDs returns all proficiency ids in ascending order.
func (s *Store) ProficiencyIDs() []string { return s.profs.sortedKeys() }

// Counts reports how many records each kind holds.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"items":         s.items.len(),
		"spells":        s.spells.len(),
		"monsters":      s.monsters.len(),
		"maps":          s.maps.len(),
		"quests":        s.quests.len(),
		"dialogues":     s.dialogues.len(),
		"conditions":    s.conditions.len(),
		"npcs":          s.npcs.len(),
		"characters":    s.characters.len(),
		"races":         s.races.len(),
		"classes":       s.classes.len(),
		"proficiencies": s.profs.len(),
	}
}

// LevelUnreachable marks a spell as uncastable for a class in
// RequiredLevelForSpell results.
const LevelUnreachable = int32(math.MaxInt32)

// CanClassCastSchool reports whether the class casts from the spell school.
// Unknown class ids report false.
func (s *Store) CanClassCastSchool(classID string, school entities.SpellSchool) bool {
	class, ok := s.classes.get(classID)
	if !ok {
		return false
	}
	return class.CanCastSchool(school)
}

// RequiredLevelForSpell returns the character level a class needs to cast a
// spell: 2*level-1 for pure casters, at least 3 for hybrids. Classes that
// cannot cast the school report LevelUnreachable.
func (s *Store) RequiredLevelForSpell(classID string, spell *entities.Spell) int32 {
	class, ok := s.classes.get(classID)
	if !ok || !class.CanCastSchool(spell.School) {
		return LevelUnreachable
	}
	required := 2*spell.Level - 1
	if !class.IsPureCaster && required < 3 {
		required = 3
	}
	return required
}

// HPDieForClass returns the class's hit die. Unknown class ids report false.
func (s *Store) HPDieForClass(classID string) (entities.DiceRoll, bool) {
	class, ok := s.classes.get(classID)
	if !ok {
		return entities.DiceRoll{}, false
	}
	return class.HPDie, true
}

// SpellStatForClass returns the attribute feeding the class's spell points,
// or false for non-casters and unknown ids.
func (s *Store) SpellStatForClass(classID string) (entities.SpellStat, bool) {
	class, ok := s.classes.get(classID)
	if !ok || class.SpellStat == nil {
		return "", false
	}
	return *class.SpellStat, true
}
