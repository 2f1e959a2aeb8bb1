package testutils

import (
	"github.com/aldervale/rpg-core/internal/entities"
)

// TestClassID is the default class for test fixtures
const TestClassID = "knight"

// CreateTestCharacter creates a conscious level-1 character with sensible
// defaults, ready to join a party or roster
func CreateTestCharacter(name string) *entities.Character {
	return &entities.Character{
		Name:    name,
		RaceID:  "human",
		ClassID: TestClassID,
		Level:   1,
		Stats:   entities.NewStats(10),
		HP:      entities.NewAttributePair(10),
		AC:      entities.NewAttributePair(0),
		Food:    10,
	}
}

// CreateTestCaster creates a level-1 cleric-style caster with spell points
func CreateTestCaster(name string) *entities.Character {
	character := CreateTestCharacter(name)
	character.ClassID = "cleric"
	character.Stats.Personality = entities.NewAttributePair(14)
	character.SP = entities.NewAttributePair(entities.SpellPoints(1, 14))
	return character
}

// CreateTestGameState creates a game state with the given characters in the
// party, each registered on the roster
func CreateTestGameState(members ...*entities.Character) *entities.GameState {
	state := entities.NewGameState()
	for _, member := range members {
		state.Party.Members = append(state.Party.Members, member)
		state.Roster.Add(member, entities.InParty())
	}
	return state
}

// CreateTestCharacterDefinition creates a recruitable character template
func CreateTestCharacterDefinition(id, name string) *entities.CharacterDefinition {
	return &entities.CharacterDefinition{
		ID:      id,
		Name:    name,
		RaceID:  "human",
		ClassID: TestClassID,
	}
}

// CreateTestClass creates a plain martial class with the given HP die
func CreateTestClass(id string, hpDieSides int32) *entities.Class {
	return &entities.Class{
		ID:    id,
		Name:  id,
		HPDie: entities.DiceRoll{Count: 1, Sides: hpDieSides},
	}
}

// CreateTestCasterClass creates a pure caster class for the given school
func CreateTestCasterClass(id string, school entities.SpellSchool, stat entities.SpellStat) *entities.Class {
	return &entities.Class{
		ID:           id,
		Name:         id,
		HPDie:        entities.DiceRoll{Count: 1, Sides: 6},
		SpellSchool:  &school,
		SpellStat:    &stat,
		IsPureCaster: true,
	}
}
