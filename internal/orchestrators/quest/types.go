package quest

import (
	"github.com/aldervale/rpg-core/internal/entities"
)

// EventType discriminates the game events the quest system consumes.
type EventType string

// Event constants
const (
	EventMonsterKilled   EventType = "MonsterKilled"
	EventItemCollected   EventType = "ItemCollected"
	EventLocationReached EventType = "LocationReached"
)

// Event is a game occurrence that may advance quest objectives.
type Event struct {
	Type EventType

	// MonsterKilled / ItemCollected fields
	MonsterID int32
	ItemID    int32
	Count     int32

	// LocationReached fields
	MapID    int32
	Position entities.Position
}

// StartQuestInput begins tracking a quest.
type StartQuestInput struct {
	State   *entities.GameState
	QuestID int32
}

// StartQuestOutput reports the started quest; AlreadyActive marks an
// idempotent restart.
type StartQuestOutput struct {
	QuestName     string
	AlreadyActive bool
}

// ProcessEventInput dispatches one game event to every tracked quest.
type ProcessEventInput struct {
	State *entities.GameState
	Event Event
}

// ProcessEventOutput lists the quests that moved because of the event.
type ProcessEventOutput struct {
	AdvancedQuests  []int32
	CompletedQuests []int32
}
