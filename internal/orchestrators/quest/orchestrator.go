// Package quest implements the quest system: starting quests, advancing
// objective progress from game events, stage completion, and reward
// application.
package quest

//go:generate mockgen -destination=mock/mock_service.go -package=questmock github.com/aldervale/rpg-core/internal/orchestrators/quest Service

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/repositories/content"
)

// Service defines the interface for quest operations
type Service interface {
	StartQuest(ctx context.Context, input *StartQuestInput) (*StartQuestOutput, error)
	ProcessEvent(ctx context.Context, input *ProcessEventInput) (*ProcessEventOutput, error)
}

// Config holds the dependencies for the quest orchestrator
type Config struct {
	ContentStore *content.Store
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ContentStore == nil {
		vb.RequiredField("ContentStore")
	}

	return vb.Build()
}

type orchestrator struct {
	store *content.Store
}

// NewOrchestrator creates a new quest orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{store: cfg.ContentStore}, nil
}

func objectivesText(stage *entities.QuestStage) []string {
	lines := make([]string, 0, len(stage.Objectives))
	for i := range stage.Objectives {
		lines = append(lines, stage.Objectives[i].Describe())
	}
	return lines
}

// StartQuest begins tracking a quest: the quest log gains an entry with the
// first stage's objectives rendered as text, and fresh progress is inserted.
// Restarting an active quest succeeds without duplicating anything.
func (o *orchestrator) StartQuest(ctx context.Context, input *StartQuestInput) (*StartQuestOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	state := input.State

	quest, ok := o.store.Quest(input.QuestID)
	if !ok {
		return nil, errors.NotFoundf("quest %d not found", input.QuestID)
	}
	if len(quest.Stages) == 0 {
		return nil, errors.FailedPreconditionf("quest '%s' has no stages", quest.Name)
	}

	if state.Quests.HasActive(quest.ID) {
		return &StartQuestOutput{QuestName: quest.Name, AlreadyActive: true}, nil
	}
	if state.Quests.HasCompleted(quest.ID) && !quest.Repeatable {
		return nil, errors.FailedPreconditionf("quest '%s' has already been completed", quest.Name)
	}

	if len(state.Party.Members) > 0 {
		level := state.Party.Members[0].Level
		if quest.MinLevel != nil && level < *quest.MinLevel {
			return nil, errors.FailedPreconditionf("quest '%s' requires level %d", quest.Name, *quest.MinLevel)
		}
		if quest.MaxLevel != nil && level > *quest.MaxLevel {
			return nil, errors.FailedPreconditionf("quest '%s' is only available up to level %d", quest.Name, *quest.MaxLevel)
		}
	}
	for _, required := range quest.RequiredQuests {
		if !state.Quests.HasCompleted(required) {
			return nil, errors.FailedPreconditionf("quest '%s' requires completing quest %d first", quest.Name, required)
		}
	}

	state.Quests.ActiveQuests = append(state.Quests.ActiveQuests, entities.ActiveQuest{
		ID:             quest.ID,
		Name:           quest.Name,
		ObjectivesText: objectivesText(&quest.Stages[0]),
	})
	state.QuestProgress[quest.ID] = entities.NewQuestProgress(quest.ID)

	slog.Info("quest started", "quest_id", quest.ID, "name", quest.Name)

	return &StartQuestOutput{QuestName: quest.Name}, nil
}

// ProcessEvent dispatches one game event to every tracked quest. Objective
// counters only ever grow, clamped at their goals; stage advancement is
// evaluated after all of a quest's objectives have seen the event.
func (o *orchestrator) ProcessEvent(ctx context.Context, input *ProcessEventInput) (*ProcessEventOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	state := input.State
	out := &ProcessEventOutput{}

	questIDs := make([]int32, 0, len(state.QuestProgress))
	for id := range state.QuestProgress {
		questIDs = append(questIDs, id)
	}
	sort.Slice(questIDs, func(i, j int) bool { return questIDs[i] < questIDs[j] })

	for _, questID := range questIDs {
		progress := state.QuestProgress[questID]
		if progress.Completed {
			continue
		}
		quest, ok := o.store.Quest(questID)
		if !ok {
			slog.Warn("tracked quest missing from content database", "quest_id", questID)
			continue
		}
		stage, ok := quest.Stage(progress.CurrentStage)
		if !ok {
			slog.Warn("quest progress points past last stage", "quest_id", questID, "stage", progress.CurrentStage)
			continue
		}

		moved := false
		for i := range stage.Objectives {
			obj := &stage.Objectives[i]
			idx := int32(i)
			if progress.ObjectiveProgress[idx] >= obj.Goal() {
				continue
			}
			if gain := objectiveGain(obj, &input.Event); gain > 0 {
				updated := entities.SaturatingAdd(progress.ObjectiveProgress[idx], gain)
				if updated > obj.Goal() {
					updated = obj.Goal()
				}
				progress.ObjectiveProgress[idx] = updated
				moved = true
			}
		}
		if !moved {
			continue
		}
		out.AdvancedQuests = append(out.AdvancedQuests, questID)

		o.advanceStages(state, quest, progress)
		if progress.Completed {
			out.CompletedQuests = append(out.CompletedQuests, questID)
		}
	}

	return out, nil
}

// objectiveGain returns how much the event advances the objective counter.
func objectiveGain(obj *entities.QuestObjective, event *Event) int32 {
	switch {
	case event.Type == EventMonsterKilled && obj.Type == entities.ObjectiveKillMonsters:
		if event.MonsterID == obj.MonsterID {
			return event.Count
		}
	case event.Type == EventItemCollected && obj.Type == entities.ObjectiveCollectItems:
		if event.ItemID == obj.ItemID {
			return event.Count
		}
	case event.Type == EventLocationReached && obj.Type == entities.ObjectiveReachLocation:
		if event.MapID == obj.MapID && withinRadius(event.Position, obj.Position, obj.Radius) {
			return 1
		}
	}
	return 0
}

// withinRadius tests the squared Chebyshev distance against radius².
func withinRadius(a, b entities.Position, radius int32) bool {
	dx := int64(a.X) - int64(b.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int64(a.Y) - int64(b.Y)
	if dy < 0 {
		dy = -dy
	}
	d := dx
	if dy > d {
		d = dy
	}
	return d*d <= int64(radius)*int64(radius)
}

func stageComplete(stage *entities.QuestStage, progress *entities.QuestProgress) bool {
	if len(stage.Objectives) == 0 {
		return true
	}
	for i := range stage.Objectives {
		satisfied := progress.ObjectiveProgress[int32(i)] >= stage.Objectives[i].Goal()
		if stage.RequireAllObjectives && !satisfied {
			return false
		}
		if !stage.RequireAllObjectives && satisfied {
			return true
		}
	}
	return stage.RequireAllObjectives
}

// advanceStages walks forward through completed stages; finishing the last
// stage completes the quest and applies its rewards.
func (o *orchestrator) advanceStages(state *entities.GameState, quest *entities.Quest, progress *entities.QuestProgress) {
	for {
		stage, ok := quest.Stage(progress.CurrentStage)
		if !ok || !stageComplete(stage, progress) {
			return
		}

		progress.CurrentStage++
		progress.ObjectiveProgress = make(map[int32]int32)

		next, ok := quest.Stage(progress.CurrentStage)
		if !ok {
			o.completeQuest(state, quest, progress)
			return
		}

		// Refresh the quest-log text for the new stage.
		for i := range state.Quests.ActiveQuests {
			if state.Quests.ActiveQuests[i].ID == quest.ID {
				state.Quests.ActiveQuests[i].ObjectivesText = objectivesText(next)
			}
		}
		slog.Info("quest stage advanced", "quest_id", quest.ID, "stage", progress.CurrentStage)
	}
}

func (o *orchestrator) completeQuest(state *entities.GameState, quest *entities.Quest, progress *entities.QuestProgress) {
	progress.Completed = true
	state.Quests.RemoveActive(quest.ID)
	state.Quests.CompletedQuests = append(state.Quests.CompletedQuests, quest.ID)

	for i := range quest.Rewards {
		o.applyReward(state, quest, &quest.Rewards[i])
	}

	slog.Info("quest completed", "quest_id", quest.ID, "name", quest.Name)
}

// applyReward mutates game state for one reward. Experience and items go to
// the first living party member; item overflow beyond inventory capacity is
// lost rather than failing the completion.
func (o *orchestrator) applyReward(state *entities.GameState, quest *entities.Quest, reward *entities.QuestReward) {
	switch reward.Type {
	case entities.RewardExperience:
		member := state.Party.FirstLivingMember()
		if member == nil {
			slog.Warn("no living member to receive experience", "quest_id", quest.ID)
			return
		}
		sum := member.Experience + int64(reward.Amount)
		if sum < member.Experience {
			sum = math.MaxInt64
		}
		member.Experience = sum

	case entities.RewardGold:
		state.Party.AwardGold(reward.Amount)

	case entities.RewardItems:
		member := state.Party.FirstLivingMember()
		if member == nil {
			slog.Warn("no living member to receive items", "quest_id", quest.ID)
			return
		}
		for _, grant := range reward.Items {
			if err := member.AddItem(grant.ItemID, grant.Quantity); err != nil {
				slog.Warn("reward item lost, inventory full",
					"quest_id", quest.ID,
					"item_id", grant.ItemID,
					"quantity", grant.Quantity,
				)
			}
		}

	case entities.RewardSetFlag:
		slog.Info("quest reward sets flag", "quest_id", quest.ID, "flag", reward.Flag)
	case entities.RewardReputation:
		slog.Info("quest reward changes reputation", "quest_id", quest.ID, "amount", reward.Amount)
	case entities.RewardUnlockQuest:
		slog.Info("quest reward unlocks quest", "quest_id", quest.ID, "unlocked", reward.QuestID)
	}
}
