// Package rpgtoolkit bridges the game's domain types onto rpg-toolkit's
// core.Entity interface so they can ride the toolkit event bus.
package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/pkg/idgen"
)

var (
	_ core.Entity = (*CharacterEntity)(nil)
	_ core.Entity = (*MonsterEntity)(nil)
)

// CharacterEntity wraps entities.Character to implement core.Entity
type CharacterEntity struct {
	*entities.Character
}

// GetID returns the character's definition ID, falling back to the name for
// characters created outside the content database
func (c *CharacterEntity) GetID() string {
	if c.DefinitionID != "" {
		return c.DefinitionID
	}
	return c.Name
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return "character"
}

// MonsterEntity wraps entities.Monster to implement core.Entity
type MonsterEntity struct {
	*entities.Monster
	id string
}

// GetID returns the monster's ID
func (m *MonsterEntity) GetID() string {
	return m.id
}

// GetType returns the entity type for rpg-toolkit
func (m *MonsterEntity) GetType() string {
	return "monster"
}

// WrapCharacter converts an entities.Character to a CharacterEntity
func WrapCharacter(character *entities.Character) *CharacterEntity {
	return &CharacterEntity{Character: character}
}

// WrapMonster converts an entities.Monster to a MonsterEntity
func WrapMonster(id string, monster *entities.Monster) *MonsterEntity {
	return &MonsterEntity{Monster: monster, id: id}
}

// MonsterSpawner wraps monster definitions as bus entities. Definitions are
// shared content; each spawn gets its own entity ID so two rats in the same
// fight stay distinguishable on the bus.
type MonsterSpawner struct {
	idGen idgen.Generator
}

// NewMonsterSpawner creates a spawner using the given ID generator
func NewMonsterSpawner(idGen idgen.Generator) *MonsterSpawner {
	return &MonsterSpawner{idGen: idGen}
}

// Spawn wraps a monster definition with a fresh instance ID
func (s *MonsterSpawner) Spawn(monster *entities.Monster) *MonsterEntity {
	return WrapMonster(s.idGen.Generate(), monster)
}
