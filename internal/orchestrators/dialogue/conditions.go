package dialogue

import (
	"log/slog"

	"github.com/aldervale/rpg-core/internal/entities"
)

// allConditions reports whether every condition in the list holds.
func (o *orchestrator) allConditions(state *entities.GameState, conditions []entities.DialogueCondition) bool {
	for i := range conditions {
		if !o.evaluate(state, &conditions[i]) {
			return false
		}
	}
	return true
}

// evaluate is a total function over game state: unknown condition kinds are
// logged and treated as unsatisfied.
func (o *orchestrator) evaluate(state *entities.GameState, cond *entities.DialogueCondition) bool {
	switch cond.Type {
	case entities.CondHasQuest:
		return state.Quests.HasActive(cond.QuestID)
	case entities.CondCompletedQuest:
		return state.Quests.HasCompleted(cond.QuestID)
	case entities.CondQuestStage:
		// Stage tracking is simplified to "quest is active".
		return state.Quests.HasActive(cond.QuestID)
	case entities.CondHasItem:
		return state.Party.CountItem(cond.ItemID) >= cond.Quantity
	case entities.CondHasGold:
		return state.Party.Gold >= cond.Amount
	case entities.CondMinLevel:
		if len(state.Party.Members) == 0 {
			return false
		}
		return state.Party.Members[0].Level >= cond.Level
	case entities.CondFlagSet:
		// The flags subsystem is not wired up yet, so only a check for
		// "unset" can succeed.
		return !cond.FlagValue
	case entities.CondReputationThreshold:
		// Reputation is not implemented.
		return false
	case entities.CondAnd:
		for i := range cond.Children {
			if !o.evaluate(state, &cond.Children[i]) {
				return false
			}
		}
		return true
	case entities.CondOr:
		for i := range cond.Children {
			if o.evaluate(state, &cond.Children[i]) {
				return true
			}
		}
		return false
	case entities.CondNot:
		if cond.Child == nil {
			return false
		}
		return !o.evaluate(state, cond.Child)
	default:
		slog.Warn("unknown dialogue condition", "type", cond.Type)
		return false
	}
}
