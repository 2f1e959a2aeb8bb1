package entities

import (
	"fmt"

	"github.com/aldervale/rpg-core/internal/errors"
)

// ObjectiveType discriminates quest objective variants.
type ObjectiveType string

// Objective constants
const (
	ObjectiveKillMonsters  ObjectiveType = "KillMonsters"
	ObjectiveCollectItems  ObjectiveType = "CollectItems"
	ObjectiveReachLocation ObjectiveType = "ReachLocation"
	ObjectiveTalkToNpc     ObjectiveType = "TalkToNpc"
	ObjectiveDeliverItem   ObjectiveType = "DeliverItem"
	ObjectiveEscortNpc     ObjectiveType = "EscortNpc"
	ObjectiveCustomFlag    ObjectiveType = "CustomFlag"
)

// QuestObjective is a tagged union over objective variants.
type QuestObjective struct {
	Type ObjectiveType `json:"type"`

	// KillMonsters fields
	MonsterID int32 `json:"monster_id,omitempty"`

	// CollectItems / DeliverItem fields
	ItemID int32 `json:"item_id,omitempty"`

	// Shared count goal for kill/collect objectives
	Quantity int32 `json:"quantity,omitempty"`

	// ReachLocation fields
	MapID    int32    `json:"map_id,omitempty"`
	Position Position `json:"position,omitempty"`
	Radius   int32    `json:"radius,omitempty"`

	// TalkToNpc / EscortNpc fields
	NpcID string `json:"npc_id,omitempty"`

	// CustomFlag fields
	Flag string `json:"flag,omitempty"`
}

// Goal returns the completion count for the objective: the quantity for
// counted objectives, 1 for everything else.
func (o *QuestObjective) Goal() int32 {
	switch o.Type {
	case ObjectiveKillMonsters, ObjectiveCollectItems:
		if o.Quantity > 0 {
			return o.Quantity
		}
		return 1
	default:
		return 1
	}
}

// Describe renders the objective as a quest-log line.
func (o *QuestObjective) Describe() string {
	switch o.Type {
	case ObjectiveKillMonsters:
		return fmt.Sprintf("Defeat %d of monster %d", o.Goal(), o.MonsterID)
	case ObjectiveCollectItems:
		return fmt.Sprintf("Collect %d of item %d", o.Goal(), o.ItemID)
	case ObjectiveReachLocation:
		return fmt.Sprintf("Reach (%d, %d) on map %d", o.Position.X, o.Position.Y, o.MapID)
	case ObjectiveTalkToNpc:
		return fmt.Sprintf("Talk to %s", o.NpcID)
	case ObjectiveDeliverItem:
		return fmt.Sprintf("Deliver item %d to %s", o.ItemID, o.NpcID)
	case ObjectiveEscortNpc:
		return fmt.Sprintf("Escort %s", o.NpcID)
	case ObjectiveCustomFlag:
		return fmt.Sprintf("Complete: %s", o.Flag)
	default:
		return string(o.Type)
	}
}

// QuestStage is an ordered phase of a quest.
type QuestStage struct {
	StageNumber          int32            `json:"stage_number"`
	Name                 string           `json:"name"`
	RequireAllObjectives bool             `json:"require_all_objectives"`
	Objectives           []QuestObjective `json:"objectives"`
}

// RewardType discriminates quest reward variants.
type RewardType string

// Reward constants
const (
	RewardExperience  RewardType = "Experience"
	RewardGold        RewardType = "Gold"
	RewardItems       RewardType = "Items"
	RewardUnlockQuest RewardType = "UnlockQuest"
	RewardSetFlag     RewardType = "SetFlag"
	RewardReputation  RewardType = "Reputation"
)

// ItemGrant pairs an item id with a quantity for reward and dialogue lists.
type ItemGrant struct {
	ItemID   int32 `json:"item_id"`
	Quantity int32 `json:"quantity"`
}

// QuestReward is a tagged union over reward variants.
type QuestReward struct {
	Type RewardType `json:"type"`

	Amount  int32       `json:"amount,omitempty"`
	Items   []ItemGrant `json:"items,omitempty"`
	QuestID int32       `json:"quest_id,omitempty"`
	Flag    string      `json:"flag,omitempty"`
}

// Quest is a content record for a multi-stage quest.
type Quest struct {
	ID             int32         `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	IsMain         bool          `json:"is_main,omitempty"`
	Repeatable     bool          `json:"repeatable,omitempty"`
	MinLevel       *int32        `json:"min_level,omitempty"`
	MaxLevel       *int32        `json:"max_level,omitempty"`
	RequiredQuests []int32       `json:"required_quests,omitempty"`
	Stages         []QuestStage  `json:"stages"`
	Rewards        []QuestReward `json:"rewards,omitempty"`
	GiverNpc       string        `json:"giver_npc,omitempty"`
	GiverMap       *int32        `json:"giver_map,omitempty"`
	GiverPosition  *Position     `json:"giver_position,omitempty"`
}

// Stage returns the stage with the given 1-based number.
func (q *Quest) Stage(number int32) (*QuestStage, bool) {
	for i := range q.Stages {
		if q.Stages[i].StageNumber == number {
			return &q.Stages[i], true
		}
	}
	return nil, false
}

// Validate checks that stage numbers ascend strictly from 1.
func (q *Quest) Validate() error {
	for i := range q.Stages {
		if q.Stages[i].StageNumber != int32(i)+1 {
			return errors.InvalidArgumentf(
				"quest %d: stage numbers must ascend strictly from 1, got %d at position %d",
				q.ID, q.Stages[i].StageNumber, i)
		}
	}
	return nil
}
