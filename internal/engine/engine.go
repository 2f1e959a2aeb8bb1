// Package engine is the event and mode bus of the core: a single-threaded
// cooperative message loop over one authoritative GameState. Messages are
// drained in insertion order each tick; messages posted while a tick runs
// are consumed in the next tick.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/aldervale/rpg-core/internal/engine Engine

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/orchestrators/dialogue"
	"github.com/aldervale/rpg-core/internal/orchestrators/quest"
	"github.com/aldervale/rpg-core/internal/repositories/gamestate"
)

// Engine drives the game loop for the host process.
type Engine interface {
	// Post enqueues a message for the next tick.
	Post(msg Message)

	// Tick drains the messages queued before the tick started, in insertion
	// order. Messages posted by handlers during the tick wait for the next.
	Tick(ctx context.Context) error

	// State exposes the authoritative game state for read-only rendering.
	State() *entities.GameState

	// Bus exposes the underlying event bus for host-side subscriptions.
	Bus() events.EventBus

	// SaveGame snapshots the current state into a save slot.
	SaveGame(ctx context.Context, slot string) error

	// LoadGame replaces the current state with a saved snapshot.
	LoadGame(ctx context.Context, slot string) error
}

// Config holds the dependencies for the engine
type Config struct {
	State           *entities.GameState
	QuestService    quest.Service
	DialogueService dialogue.Service
	StateRepo       gamestate.Repository
	EventBus        events.EventBus
	CampaignID      string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.State == nil {
		vb.RequiredField("State")
	}
	if c.QuestService == nil {
		vb.RequiredField("QuestService")
	}
	if c.DialogueService == nil {
		vb.RequiredField("DialogueService")
	}
	if c.StateRepo == nil {
		vb.RequiredField("StateRepo")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}

	return vb.Build()
}

type engine struct {
	state       *entities.GameState
	questSvc    quest.Service
	dialogueSvc dialogue.Service
	stateRepo   gamestate.Repository
	eventBus    events.EventBus
	campaignID  string

	pending []Message
}

// New creates a new engine with the provided dependencies
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &engine{
		state:       cfg.State,
		questSvc:    cfg.QuestService,
		dialogueSvc: cfg.DialogueService,
		stateRepo:   cfg.StateRepo,
		eventBus:    cfg.EventBus,
		campaignID:  cfg.CampaignID,
	}, nil
}

func (e *engine) Post(msg Message) {
	e.pending = append(e.pending, msg)
}

func (e *engine) State() *entities.GameState {
	return e.state
}

func (e *engine) Bus() events.EventBus {
	return e.eventBus
}

// Tick drains the queue as it stood when the tick began. Handler failures
// are logged and the remaining messages still run; the loop never wedges on
// one bad message.
func (e *engine) Tick(ctx context.Context) error {
	batch := e.pending
	e.pending = nil

	for i := range batch {
		if err := e.dispatch(ctx, &batch[i]); err != nil {
			slog.Error("message handler failed", "type", batch[i].Type, "error", err)
		}
	}
	return nil
}

func (e *engine) dispatch(ctx context.Context, msg *Message) error {
	switch msg.Type {
	case MsgMonsterKilled:
		_, err := e.questSvc.ProcessEvent(ctx, &quest.ProcessEventInput{
			State: e.state,
			Event: quest.Event{Type: quest.EventMonsterKilled, MonsterID: msg.MonsterID, Count: msg.Count},
		})
		return err

	case MsgItemCollected:
		_, err := e.questSvc.ProcessEvent(ctx, &quest.ProcessEventInput{
			State: e.state,
			Event: quest.Event{Type: quest.EventItemCollected, ItemID: msg.ItemID, Count: msg.Count},
		})
		return err

	case MsgLocationReached:
		_, err := e.questSvc.ProcessEvent(ctx, &quest.ProcessEventInput{
			State: e.state,
			Event: quest.Event{Type: quest.EventLocationReached, MapID: msg.MapID, Position: msg.Position},
		})
		return err

	case MsgStartDialogue:
		_, err := e.dialogueSvc.Start(ctx, &dialogue.StartInput{
			State:              e.state,
			TreeID:             msg.TreeID,
			SpeakerEntity:      msg.SpeakerEntity,
			FallbackPosition:   msg.FallbackPosition,
			RecruitmentContext: msg.RecruitmentContext,
		})
		return err

	case MsgSimpleDialogue:
		_, err := e.dialogueSvc.SimpleDialogue(ctx, &dialogue.SimpleDialogueInput{
			State:       e.state,
			Text:        msg.Text,
			SpeakerName: msg.SpeakerName,
		})
		return err

	case MsgSelectDialogueChoice:
		_, err := e.dialogueSvc.SelectChoice(ctx, &dialogue.SelectChoiceInput{
			State:       e.state,
			ChoiceIndex: msg.ChoiceIndex,
		})
		return err

	case MsgAdvanceDialogue:
		_, err := e.dialogueSvc.Advance(ctx, &dialogue.AdvanceInput{State: e.state})
		return err

	default:
		return errors.InvalidArgumentf("unknown message type '%s'", msg.Type)
	}
}

// SaveGame snapshots the current state into a save slot.
func (e *engine) SaveGame(ctx context.Context, slot string) error {
	_, err := e.stateRepo.Save(ctx, gamestate.SaveInput{
		Slot:       slot,
		CampaignID: e.campaignID,
		State:      e.state,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to save game to slot '%s'", slot)
	}

	slog.Info("game saved", "slot", slot)
	return nil
}

// LoadGame replaces the current state in place with a saved snapshot, so
// references held by the host stay valid. Queued messages and host bus
// subscriptions are dropped; they belong to the session being replaced.
func (e *engine) LoadGame(ctx context.Context, slot string) error {
	out, err := e.stateRepo.Load(ctx, gamestate.LoadInput{Slot: slot})
	if err != nil {
		return errors.Wrapf(err, "failed to load game from slot '%s'", slot)
	}

	*e.state = *out.Snapshot.State
	e.pending = nil
	e.eventBus.ClearAll()

	slog.Info("game loaded", "slot", slot, "saved_at", out.Snapshot.SavedAt)
	return nil
}
