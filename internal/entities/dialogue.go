package entities

import (
	"github.com/aldervale/rpg-core/internal/errors"
)

// NodeID identifies a node within a dialogue tree.
type NodeID int32

// DialogueConditionType discriminates dialogue condition variants.
type DialogueConditionType string

// Dialogue condition constants
const (
	CondHasQuest            DialogueConditionType = "HasQuest"
	CondCompletedQuest      DialogueConditionType = "CompletedQuest"
	CondQuestStage          DialogueConditionType = "QuestStage"
	CondHasItem             DialogueConditionType = "HasItem"
	CondHasGold             DialogueConditionType = "HasGold"
	CondMinLevel            DialogueConditionType = "MinLevel"
	CondFlagSet             DialogueConditionType = "FlagSet"
	CondReputationThreshold DialogueConditionType = "ReputationThreshold"
	CondAnd                 DialogueConditionType = "And"
	CondOr                  DialogueConditionType = "Or"
	CondNot                 DialogueConditionType = "Not"
)

// DialogueCondition is a tagged union over dialogue condition variants; the
// boolean combinators nest through Children / Child.
type DialogueCondition struct {
	Type DialogueConditionType `json:"type"`

	QuestID   int32  `json:"quest_id,omitempty"`
	Stage     int32  `json:"stage,omitempty"`
	ItemID    int32  `json:"item_id,omitempty"`
	Quantity  int32  `json:"quantity,omitempty"`
	Amount    int32  `json:"amount,omitempty"`
	Level     int32  `json:"level,omitempty"`
	Flag      string `json:"flag,omitempty"`
	FlagValue bool   `json:"flag_value,omitempty"`
	Faction   string `json:"faction,omitempty"`
	Threshold int32  `json:"threshold,omitempty"`

	Children []DialogueCondition `json:"children,omitempty"`
	Child    *DialogueCondition  `json:"child,omitempty"`
}

// DialogueActionType discriminates dialogue action variants.
type DialogueActionType string

// Dialogue action constants
const (
	ActionStartQuest         DialogueActionType = "StartQuest"
	ActionCompleteQuestStage DialogueActionType = "CompleteQuestStage"
	ActionGiveItems          DialogueActionType = "GiveItems"
	ActionTakeItems          DialogueActionType = "TakeItems"
	ActionGiveGold           DialogueActionType = "GiveGold"
	ActionTakeGold           DialogueActionType = "TakeGold"
	ActionGrantExperience    DialogueActionType = "GrantExperience"
	ActionSetFlag            DialogueActionType = "SetFlag"
	ActionChangeReputation   DialogueActionType = "ChangeReputation"
	ActionTriggerEvent       DialogueActionType = "TriggerEvent"
	ActionRecruitToParty     DialogueActionType = "RecruitToParty"
	ActionRecruitToInn       DialogueActionType = "RecruitToInn"
)

// DialogueAction is a tagged union over dialogue action variants.
type DialogueAction struct {
	Type DialogueActionType `json:"type"`

	QuestID     int32       `json:"quest_id,omitempty"`
	Stage       int32       `json:"stage,omitempty"`
	Items       []ItemGrant `json:"items,omitempty"`
	Amount      int32       `json:"amount,omitempty"`
	Flag        string      `json:"flag,omitempty"`
	FlagValue   bool        `json:"flag_value,omitempty"`
	Faction     string      `json:"faction,omitempty"`
	Event       string      `json:"event,omitempty"`
	CharacterID string      `json:"character_id,omitempty"`
	InnkeeperID string      `json:"innkeeper_id,omitempty"`
}

// DialogueChoice is a selectable response on a dialogue node.
type DialogueChoice struct {
	Text         string              `json:"text"`
	TargetNode   *NodeID             `json:"target_node,omitempty"`
	Conditions   []DialogueCondition `json:"conditions,omitempty"`
	Actions      []DialogueAction    `json:"actions,omitempty"`
	EndsDialogue bool                `json:"ends_dialogue,omitempty"`
}

// DialogueNode is a single state in a dialogue tree.
type DialogueNode struct {
	ID              NodeID              `json:"id"`
	Text            string              `json:"text"`
	SpeakerOverride string              `json:"speaker_override,omitempty"`
	Conditions      []DialogueCondition `json:"conditions,omitempty"`
	Choices         []DialogueChoice    `json:"choices,omitempty"`
	Actions         []DialogueAction    `json:"actions,omitempty"`
	IsTerminal      bool                `json:"is_terminal,omitempty"`
}

// DialogueTree is a content record for one authored conversation.
type DialogueTree struct {
	ID              int32                   `json:"id"`
	Name            string                  `json:"name"`
	RootNode        NodeID                  `json:"root_node"`
	SpeakerName     string                  `json:"speaker_name,omitempty"`
	AssociatedQuest *int32                  `json:"associated_quest,omitempty"`
	Repeatable      bool                    `json:"repeatable,omitempty"`
	Nodes           map[NodeID]DialogueNode `json:"nodes"`
}

// ValidateStructure checks that the root node and every choice target
// resolve within the tree.
func (t *DialogueTree) ValidateStructure() error {
	if _, ok := t.Nodes[t.RootNode]; !ok {
		return errors.InvalidArgumentf("dialogue %d: root node %d not found", t.ID, t.RootNode)
	}
	for nodeID, node := range t.Nodes {
		for i, choice := range node.Choices {
			if choice.TargetNode == nil {
				continue
			}
			if _, ok := t.Nodes[*choice.TargetNode]; !ok {
				return errors.InvalidArgumentf(
					"dialogue %d: node %d choice %d targets missing node %d",
					t.ID, nodeID, i, *choice.TargetNode)
			}
		}
	}
	return nil
}
