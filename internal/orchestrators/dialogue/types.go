package dialogue

import (
	"github.com/aldervale/rpg-core/internal/entities"
)

// StartInput opens an authored dialogue tree.
type StartInput struct {
	State  *entities.GameState
	TreeID int32
	// SpeakerEntity names the world entity being talked to, if any.
	SpeakerEntity    string
	FallbackPosition *entities.Position
	// RecruitmentContext is attached one-shot when the dialogue came from a
	// recruitment map event.
	RecruitmentContext *entities.RecruitmentContext
}

// StartOutput reports whether the dialogue actually opened; a missing or
// structurally broken tree leaves the current mode untouched.
type StartOutput struct {
	Started bool
}

// SimpleDialogueInput shows a one-shot message with no tree behind it.
type SimpleDialogueInput struct {
	State       *entities.GameState
	Text        string
	SpeakerName string
}

// SimpleDialogueOutput is empty.
type SimpleDialogueOutput struct{}

// SelectChoiceInput picks a choice on the current dialogue node.
type SelectChoiceInput struct {
	State       *entities.GameState
	ChoiceIndex int
}

// SelectChoiceOutput reports whether the dialogue ended.
type SelectChoiceOutput struct {
	Ended bool
}

// AdvanceInput dismisses a simple dialogue or a node without choices.
type AdvanceInput struct {
	State *entities.GameState
}

// AdvanceOutput reports whether the dialogue ended.
type AdvanceOutput struct {
	Ended bool
}
