package entities

// GameModeType discriminates the exclusive top-level game modes.
type GameModeType string

// Game mode constants
const (
	ModeExploration GameModeType = "Exploration"
	ModeCombat      GameModeType = "Combat"
	ModeDialogue    GameModeType = "Dialogue"
	ModeMenu        GameModeType = "Menu"
)

// GameMode is the current exclusive mode; Dialogue carries its state.
type GameMode struct {
	Type     GameModeType   `json:"type"`
	Dialogue *DialogueState `json:"dialogue,omitempty"`
}

// RecruitmentContext is the one-shot payload handed to a dialogue describing
// the map event that spawned it; consumed when a recruitment action runs.
type RecruitmentContext struct {
	CharacterID string   `json:"character_id"`
	MapID       int32    `json:"map_id"`
	Position    Position `json:"position"`
}

// DialogueState is the visible state of an in-progress conversation.
type DialogueState struct {
	ActiveTreeID       *int32              `json:"active_tree_id,omitempty"`
	CurrentNodeID      NodeID              `json:"current_node_id"`
	CurrentText        string              `json:"current_text"`
	CurrentSpeaker     string              `json:"current_speaker,omitempty"`
	CurrentChoices     []string            `json:"current_choices,omitempty"`
	SpeakerEntity      string              `json:"speaker_entity,omitempty"`
	FallbackPosition   *Position           `json:"fallback_position,omitempty"`
	RecruitmentContext *RecruitmentContext `json:"recruitment_context,omitempty"`
}

// StartDialogueState seeds a dialogue state at a tree's root node.
func StartDialogueState(treeID int32, root NodeID) *DialogueState {
	id := treeID
	return &DialogueState{ActiveTreeID: &id, CurrentNodeID: root}
}

// ActiveQuest is a quest-log entry rendered for the UI.
type ActiveQuest struct {
	ID             int32    `json:"id"`
	Name           string   `json:"name"`
	ObjectivesText []string `json:"objectives_text,omitempty"`
}

// QuestLog tracks active and completed quests for display.
type QuestLog struct {
	ActiveQuests    []ActiveQuest `json:"active_quests,omitempty"`
	CompletedQuests []int32       `json:"completed_quests,omitempty"`
}

// HasActive reports whether the quest is currently in the log.
func (q *QuestLog) HasActive(questID int32) bool {
	for _, aq := range q.ActiveQuests {
		if aq.ID == questID {
			return true
		}
	}
	return false
}

// HasCompleted reports whether the quest has been completed.
func (q *QuestLog) HasCompleted(questID int32) bool {
	for _, id := range q.CompletedQuests {
		if id == questID {
			return true
		}
	}
	return false
}

// RemoveActive deletes a quest from the active list.
func (q *QuestLog) RemoveActive(questID int32) {
	kept := q.ActiveQuests[:0]
	for _, aq := range q.ActiveQuests {
		if aq.ID == questID {
			continue
		}
		kept = append(kept, aq)
	}
	q.ActiveQuests = kept
}

// QuestProgress tracks runtime advancement through one quest's stages.
type QuestProgress struct {
	QuestID           int32           `json:"quest_id"`
	CurrentStage      int32           `json:"current_stage"`
	ObjectiveProgress map[int32]int32 `json:"objective_progress,omitempty"`
	Completed         bool            `json:"completed"`
}

// NewQuestProgress starts tracking a quest at its first stage.
func NewQuestProgress(questID int32) *QuestProgress {
	return &QuestProgress{
		QuestID:           questID,
		CurrentStage:      1,
		ObjectiveProgress: make(map[int32]int32),
	}
}

// WorldState tracks the party's position in the world.
type WorldState struct {
	CurrentMapID int32     `json:"current_map_id"`
	Position     Position  `json:"position"`
	Direction    Direction `json:"direction,omitempty"`
}

// GameState is the single authoritative mutable state of a running game.
type GameState struct {
	Mode                  GameMode                  `json:"mode"`
	Party                 Party                     `json:"party"`
	Roster                Roster                    `json:"roster"`
	Quests                QuestLog                  `json:"quests"`
	QuestProgress         map[int32]*QuestProgress  `json:"quest_progress,omitempty"`
	World                 WorldState                `json:"world"`
	EncounteredCharacters map[string]bool           `json:"encountered_characters,omitempty"`
	Flags                 map[string]bool           `json:"flags,omitempty"`
	Maps                  map[int32]*Map            `json:"maps,omitempty"`
}

// NewGameState creates an empty state in exploration mode.
func NewGameState() *GameState {
	return &GameState{
		Mode:                  GameMode{Type: ModeExploration},
		QuestProgress:         make(map[int32]*QuestProgress),
		EncounteredCharacters: make(map[string]bool),
		Flags:                 make(map[string]bool),
		Maps:                  make(map[int32]*Map),
	}
}

// Encountered reports whether a character template has already been met.
func (g *GameState) Encountered(characterID string) bool {
	return g.EncounteredCharacters[characterID]
}

// MarkEncountered records that a character template has been met.
func (g *GameState) MarkEncountered(characterID string) {
	if g.EncounteredCharacters == nil {
		g.EncounteredCharacters = make(map[string]bool)
	}
	g.EncounteredCharacters[characterID] = true
}

// DialogueStateRef returns the live dialogue state when in dialogue mode.
func (g *GameState) DialogueStateRef() (*DialogueState, bool) {
	if g.Mode.Type != ModeDialogue || g.Mode.Dialogue == nil {
		return nil, false
	}
	return g.Mode.Dialogue, true
}

// EnterDialogue switches to dialogue mode with the given state.
func (g *GameState) EnterDialogue(state *DialogueState) {
	g.Mode = GameMode{Type: ModeDialogue, Dialogue: state}
}

// ExitToExploration returns to exploration mode, dropping any dialogue state.
func (g *GameState) ExitToExploration() {
	g.Mode = GameMode{Type: ModeExploration}
}
