package dialogue

import (
	"context"
	"log/slog"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/orchestrators/party"
	"github.com/aldervale/rpg-core/internal/orchestrators/quest"
)

// executeActions runs every action in order. Action failures never abort the
// dialogue; they are logged and the remaining actions still run.
func (o *orchestrator) executeActions(ctx context.Context, state *entities.GameState, actions []entities.DialogueAction) {
	for i := range actions {
		o.execute(ctx, state, &actions[i])
	}
}

func (o *orchestrator) execute(ctx context.Context, state *entities.GameState, action *entities.DialogueAction) {
	switch action.Type {
	case entities.ActionStartQuest:
		if _, err := o.questSvc.StartQuest(ctx, &quest.StartQuestInput{
			State:   state,
			QuestID: action.QuestID,
		}); err != nil {
			slog.Warn("dialogue could not start quest", "quest_id", action.QuestID, "error", err)
		}

	case entities.ActionCompleteQuestStage:
		slog.Info("dialogue completes quest stage", "quest_id", action.QuestID, "stage", action.Stage)

	case entities.ActionGiveItems:
		member := state.Party.FirstMember()
		if member == nil {
			slog.Warn("no member to receive items")
			return
		}
		for _, grant := range action.Items {
			if err := member.AddItem(grant.ItemID, grant.Quantity); err != nil {
				slog.Warn("dialogue item lost, inventory full", "item_id", grant.ItemID)
			}
		}

	case entities.ActionTakeItems:
		member := state.Party.FirstMember()
		if member == nil {
			slog.Warn("no member to take items from")
			return
		}
		for _, grant := range action.Items {
			if err := member.RemoveItem(grant.ItemID, grant.Quantity); err != nil {
				slog.Warn("dialogue could not take items", "item_id", grant.ItemID, "error", err)
			}
		}

	case entities.ActionGiveGold:
		state.Party.AwardGold(action.Amount)
	case entities.ActionTakeGold:
		state.Party.SpendGold(action.Amount)

	case entities.ActionGrantExperience:
		member := state.Party.FirstMember()
		if member == nil {
			slog.Warn("no member to receive experience")
			return
		}
		sum := member.Experience + int64(action.Amount)
		if sum < member.Experience {
			return
		}
		member.Experience = sum

	case entities.ActionSetFlag:
		slog.Info("dialogue sets flag", "flag", action.Flag, "value", action.FlagValue)
	case entities.ActionChangeReputation:
		slog.Info("dialogue changes reputation", "faction", action.Faction, "amount", action.Amount)
	case entities.ActionTriggerEvent:
		slog.Info("dialogue triggers event", "event", action.Event)

	case entities.ActionRecruitToParty:
		o.recruitToParty(ctx, state, action.CharacterID)
	case entities.ActionRecruitToInn:
		o.recruitToInn(state, action.CharacterID, action.InnkeeperID)

	default:
		slog.Warn("unknown dialogue action", "type", action.Type)
	}
}

// recruitToParty hands recruitment to the party manager and, on success,
// removes the recruitment event from the map the dialogue was started from.
func (o *orchestrator) recruitToParty(ctx context.Context, state *entities.GameState, characterID string) {
	if state.Encountered(characterID) {
		slog.Info("character already recruited, ignoring", "character_id", characterID)
		return
	}

	out, err := o.partySvc.RecruitFromMap(ctx, &party.RecruitFromMapInput{
		State:       state,
		CharacterID: characterID,
	})
	if err != nil {
		slog.Warn("dialogue recruitment failed", "character_id", characterID, "error", err)
		return
	}
	if out.AddedToParty {
		slog.Info("recruit joined the party", "character_id", characterID)
	} else {
		slog.Info("recruit sent to inn", "character_id", characterID, "inn_id", out.InnID)
	}

	o.removeRecruitmentEvent(state)
}

// recruitToInn instantiates the character straight into the roster at an inn
// after verifying the innkeeper.
func (o *orchestrator) recruitToInn(state *entities.GameState, characterID, innkeeperID string) {
	if state.Encountered(characterID) {
		slog.Info("character already recruited, ignoring", "character_id", characterID)
		return
	}

	npc, ok := o.store.NPC(innkeeperID)
	if !ok || !npc.IsInnkeeper {
		slog.Warn("recruit target innkeeper invalid", "innkeeper_id", innkeeperID)
		return
	}
	def, ok := o.store.Character(characterID)
	if !ok {
		slog.Warn("recruit character definition missing", "character_id", characterID)
		return
	}
	if state.Roster.IsFull() {
		slog.Warn("roster full, recruit lost", "character_id", characterID)
		return
	}

	class, _ := o.store.Class(def.ClassID)
	character := def.Instantiate(class)
	state.Roster.Add(character, entities.AtInn(party.DefaultInnID))
	state.MarkEncountered(characterID)

	slog.Info("recruit waiting at inn", "character_id", characterID, "innkeeper_id", innkeeperID)

	o.removeRecruitmentEvent(state)
}

// removeRecruitmentEvent consumes the one-shot recruitment context, deleting
// the map event that spawned the dialogue.
func (o *orchestrator) removeRecruitmentEvent(state *entities.GameState) {
	ds, ok := state.DialogueStateRef()
	if !ok || ds.RecruitmentContext == nil {
		return
	}
	rc := ds.RecruitmentContext
	ds.RecruitmentContext = nil

	m, ok := state.Maps[rc.MapID]
	if !ok {
		slog.Warn("recruitment context names unknown map", "map_id", rc.MapID)
		return
	}
	if m.RemoveEventAt(rc.Position) {
		slog.Info("recruitment event removed from map", "map_id", rc.MapID, "x", rc.Position.X, "y", rc.Position.Y)
	}
}
