package engine

import (
	"github.com/aldervale/rpg-core/internal/entities"
)

// MessageType discriminates the messages the engine consumes. These are the
// external boundary of the core: the host process translates raw input into
// messages and posts them.
type MessageType string

// Message constants
const (
	MsgMonsterKilled        MessageType = "MonsterKilled"
	MsgItemCollected        MessageType = "ItemCollected"
	MsgLocationReached      MessageType = "LocationReached"
	MsgStartDialogue        MessageType = "StartDialogue"
	MsgSimpleDialogue       MessageType = "SimpleDialogue"
	MsgSelectDialogueChoice MessageType = "SelectDialogueChoice"
	MsgAdvanceDialogue      MessageType = "AdvanceDialogue"
)

// Message is a tagged union over engine messages.
type Message struct {
	Type MessageType

	// MonsterKilled / ItemCollected fields
	MonsterID int32
	ItemID    int32
	Count     int32

	// LocationReached fields
	MapID    int32
	Position entities.Position

	// StartDialogue fields
	TreeID             int32
	SpeakerEntity      string
	FallbackPosition   *entities.Position
	RecruitmentContext *entities.RecruitmentContext

	// SimpleDialogue fields
	Text        string
	SpeakerName string

	// SelectDialogueChoice fields
	ChoiceIndex int
}

// MonsterKilled builds the message for a slain monster.
func MonsterKilled(monsterID, count int32) Message {
	return Message{Type: MsgMonsterKilled, MonsterID: monsterID, Count: count}
}

// ItemCollected builds the message for picked-up items.
func ItemCollected(itemID, count int32) Message {
	return Message{Type: MsgItemCollected, ItemID: itemID, Count: count}
}

// LocationReached builds the message for the party arriving at a position.
func LocationReached(mapID int32, pos entities.Position) Message {
	return Message{Type: MsgLocationReached, MapID: mapID, Position: pos}
}

// StartDialogue builds the message opening a dialogue tree.
func StartDialogue(treeID int32) Message {
	return Message{Type: MsgStartDialogue, TreeID: treeID}
}

// SelectDialogueChoice builds the message picking a dialogue choice.
func SelectDialogueChoice(index int) Message {
	return Message{Type: MsgSelectDialogueChoice, ChoiceIndex: index}
}
