// Package dialogue implements the dialogue runtime: a cooperative state
// machine over GameState's dialogue mode that walks authored trees,
// evaluates conditions, and executes the mutations their actions describe.
package dialogue

//go:generate mockgen -destination=mock/mock_service.go -package=dialoguemock github.com/aldervale/rpg-core/internal/orchestrators/dialogue Service

import (
	"context"
	"log/slog"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/orchestrators/party"
	"github.com/aldervale/rpg-core/internal/orchestrators/quest"
	"github.com/aldervale/rpg-core/internal/repositories/content"
)

// Service defines the interface for dialogue operations
type Service interface {
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)
	SimpleDialogue(ctx context.Context, input *SimpleDialogueInput) (*SimpleDialogueOutput, error)
	SelectChoice(ctx context.Context, input *SelectChoiceInput) (*SelectChoiceOutput, error)
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)
}

// Config holds the dependencies for the dialogue orchestrator
type Config struct {
	ContentStore *content.Store
	QuestService quest.Service
	PartyService party.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ContentStore == nil {
		vb.RequiredField("ContentStore")
	}
	if c.QuestService == nil {
		vb.RequiredField("QuestService")
	}
	if c.PartyService == nil {
		vb.RequiredField("PartyService")
	}

	return vb.Build()
}

type orchestrator struct {
	store    *content.Store
	questSvc quest.Service
	partySvc party.Service
}

// NewOrchestrator creates a new dialogue orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		store:    cfg.ContentStore,
		questSvc: cfg.QuestService,
		partySvc: cfg.PartyService,
	}, nil
}

// Start opens a dialogue tree. A missing or structurally broken tree is
// logged and the current mode stays as it was.
func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	state := input.State

	tree, ok := o.store.Dialogue(input.TreeID)
	if !ok {
		slog.Error("dialogue tree not found", "tree_id", input.TreeID)
		return &StartOutput{}, nil
	}
	if err := tree.ValidateStructure(); err != nil {
		slog.Error("dialogue tree failed structural validation", "tree_id", input.TreeID, "error", err)
		return &StartOutput{}, nil
	}

	ds := entities.StartDialogueState(tree.ID, tree.RootNode)
	ds.SpeakerEntity = input.SpeakerEntity
	ds.FallbackPosition = input.FallbackPosition
	ds.RecruitmentContext = input.RecruitmentContext
	state.EnterDialogue(ds)

	root := tree.Nodes[tree.RootNode]
	o.executeActions(ctx, state, root.Actions)
	refreshView(ds, tree, &root)

	slog.Info("dialogue started", "tree_id", tree.ID, "name", tree.Name)

	return &StartOutput{Started: true}, nil
}

// SimpleDialogue shows a one-shot message; any choice or advance dismisses
// it back to exploration.
func (o *orchestrator) SimpleDialogue(ctx context.Context, input *SimpleDialogueInput) (*SimpleDialogueOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}

	input.State.EnterDialogue(&entities.DialogueState{
		CurrentText:    input.Text,
		CurrentSpeaker: input.SpeakerName,
		CurrentChoices: []string{"Continue"},
	})

	return &SimpleDialogueOutput{}, nil
}

// SelectChoice processes a choice pick on the current node: conditions gate
// the pick, actions run, then the dialogue ends or moves to the target node.
func (o *orchestrator) SelectChoice(ctx context.Context, input *SelectChoiceInput) (*SelectChoiceOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	state := input.State

	ds, ok := state.DialogueStateRef()
	if !ok {
		return nil, errors.FailedPrecondition("not in dialogue mode")
	}

	// A simple dialogue has no tree behind it; any choice dismisses it.
	if ds.ActiveTreeID == nil {
		state.ExitToExploration()
		return &SelectChoiceOutput{Ended: true}, nil
	}

	tree, ok := o.store.Dialogue(*ds.ActiveTreeID)
	if !ok {
		slog.Error("active dialogue tree vanished from content database", "tree_id", *ds.ActiveTreeID)
		state.ExitToExploration()
		return &SelectChoiceOutput{Ended: true}, nil
	}
	node, ok := tree.Nodes[ds.CurrentNodeID]
	if !ok {
		slog.Error("dialogue state points at missing node", "tree_id", tree.ID, "node_id", ds.CurrentNodeID)
		state.ExitToExploration()
		return &SelectChoiceOutput{Ended: true}, nil
	}

	if input.ChoiceIndex < 0 || input.ChoiceIndex >= len(node.Choices) {
		slog.Error("dialogue choice index out of range",
			"tree_id", tree.ID,
			"node_id", ds.CurrentNodeID,
			"choice", input.ChoiceIndex,
		)
		return &SelectChoiceOutput{}, nil
	}
	choice := node.Choices[input.ChoiceIndex]

	// The choice was only really available if both the node's and the
	// choice's conditions hold.
	if !o.allConditions(state, node.Conditions) || !o.allConditions(state, choice.Conditions) {
		slog.Info("dialogue choice conditions not met, input ignored",
			"tree_id", tree.ID,
			"choice", input.ChoiceIndex,
		)
		return &SelectChoiceOutput{}, nil
	}

	o.executeActions(ctx, state, choice.Actions)

	if choice.EndsDialogue || choice.TargetNode == nil {
		state.ExitToExploration()
		return &SelectChoiceOutput{Ended: true}, nil
	}

	target, ok := tree.Nodes[*choice.TargetNode]
	if !ok {
		slog.Error("dialogue choice targets missing node", "tree_id", tree.ID, "target", *choice.TargetNode)
		state.ExitToExploration()
		return &SelectChoiceOutput{Ended: true}, nil
	}

	ds.CurrentNodeID = *choice.TargetNode
	o.executeActions(ctx, state, target.Actions)
	refreshView(ds, tree, &target)

	return &SelectChoiceOutput{}, nil
}

// Advance dismisses a simple dialogue, or ends a tree dialogue stalled on a
// node without choices.
func (o *orchestrator) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	state := input.State

	ds, ok := state.DialogueStateRef()
	if !ok {
		return nil, errors.FailedPrecondition("not in dialogue mode")
	}

	if ds.ActiveTreeID == nil {
		state.ExitToExploration()
		return &AdvanceOutput{Ended: true}, nil
	}

	tree, ok := o.store.Dialogue(*ds.ActiveTreeID)
	if ok {
		if node, found := tree.Nodes[ds.CurrentNodeID]; found && len(node.Choices) > 0 {
			return &AdvanceOutput{}, nil
		}
	}
	state.ExitToExploration()
	return &AdvanceOutput{Ended: true}, nil
}

// refreshView copies the node's presentation into the visible dialogue state.
func refreshView(ds *entities.DialogueState, tree *entities.DialogueTree, node *entities.DialogueNode) {
	ds.CurrentText = node.Text
	ds.CurrentSpeaker = tree.SpeakerName
	if node.SpeakerOverride != "" {
		ds.CurrentSpeaker = node.SpeakerOverride
	}
	choices := make([]string, 0, len(node.Choices))
	for i := range node.Choices {
		choices = append(choices, node.Choices[i].Text)
	}
	ds.CurrentChoices = choices
}
