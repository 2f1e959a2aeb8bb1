package dialogue_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/orchestrators/dialogue"
	"github.com/aldervale/rpg-core/internal/orchestrators/party"
	"github.com/aldervale/rpg-core/internal/orchestrators/quest"
	"github.com/aldervale/rpg-core/internal/repositories/content"
	"github.com/aldervale/rpg-core/internal/testutils"
)

type DialogueTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *content.Store
	svc   dialogue.Service
	state *entities.GameState
}

func TestDialogueSuite(t *testing.T) {
	suite.Run(t, new(DialogueTestSuite))
}

func (s *DialogueTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = content.NewStore()

	partySvc, err := party.NewOrchestrator(&party.Config{ContentStore: s.store})
	s.Require().NoError(err)
	questSvc, err := quest.NewOrchestrator(&quest.Config{ContentStore: s.store})
	s.Require().NoError(err)
	svc, err := dialogue.NewOrchestrator(&dialogue.Config{
		ContentStore: s.store,
		QuestService: questSvc,
		PartyService: partySvc,
	})
	s.Require().NoError(err)
	s.svc = svc

	s.state = entities.NewGameState()
}

func node(id entities.NodeID, text string, choices ...entities.DialogueChoice) entities.DialogueNode {
	return entities.DialogueNode{ID: id, Text: text, Choices: choices}
}

func target(id entities.NodeID) *entities.NodeID {
	return &id
}

func (s *DialogueTestSuite) addTree(tree *entities.DialogueTree) {
	s.Require().NoError(s.store.AddDialogue(tree))
}

func (s *DialogueTestSuite) addPartyMember(name string) *entities.Character {
	c := testutils.CreateTestCharacter(name)
	c.Level = 3
	s.state.Party.Members = append(s.state.Party.Members, c)
	s.state.Roster.Add(c, entities.InParty())
	return c
}

func (s *DialogueTestSuite) TestStartPopulatesView() {
	s.addTree(&entities.DialogueTree{
		ID:          1,
		Name:        "Greeting",
		RootNode:    1,
		SpeakerName: "Greta",
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Welcome, traveler.",
				entities.DialogueChoice{Text: "Hello.", EndsDialogue: true},
				entities.DialogueChoice{Text: "Goodbye.", EndsDialogue: true},
			),
		},
	})

	out, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 1})
	s.Require().NoError(err)
	s.Assert().True(out.Started)

	ds, ok := s.state.DialogueStateRef()
	s.Require().True(ok)
	s.Assert().Equal("Welcome, traveler.", ds.CurrentText)
	s.Assert().Equal("Greta", ds.CurrentSpeaker)
	s.Assert().Equal([]string{"Hello.", "Goodbye."}, ds.CurrentChoices)
}

func (s *DialogueTestSuite) TestStartMissingTreeStaysPut() {
	out, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 99})
	s.Require().NoError(err)
	s.Assert().False(out.Started)
	s.Assert().Equal(entities.ModeExploration, s.state.Mode.Type)
}

func (s *DialogueTestSuite) TestStartBrokenTreeStaysPut() {
	s.addTree(&entities.DialogueTree{
		ID:       2,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Hi", entities.DialogueChoice{Text: "?", TargetNode: target(42)}),
		},
	})

	out, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 2})
	s.Require().NoError(err)
	s.Assert().False(out.Started)
	s.Assert().Equal(entities.ModeExploration, s.state.Mode.Type)
}

func (s *DialogueTestSuite) TestChoiceWalkAndEnd() {
	s.addTree(&entities.DialogueTree{
		ID:       3,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "First", entities.DialogueChoice{Text: "Next", TargetNode: target(2)}),
			2: node(2, "Second", entities.DialogueChoice{Text: "Bye", EndsDialogue: true}),
		},
	})

	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 3})
	s.Require().NoError(err)

	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().False(out.Ended)
	ds, _ := s.state.DialogueStateRef()
	s.Assert().Equal("Second", ds.CurrentText)

	out, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().True(out.Ended)
	s.Assert().Equal(entities.ModeExploration, s.state.Mode.Type)
}

func (s *DialogueTestSuite) TestOutOfRangeChoiceIgnored() {
	s.addTree(&entities.DialogueTree{
		ID:       4,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Hi", entities.DialogueChoice{Text: "Bye", EndsDialogue: true}),
		},
	})
	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 4})
	s.Require().NoError(err)

	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 5})
	s.Require().NoError(err)
	s.Assert().False(out.Ended)
	s.Assert().Equal(entities.ModeDialogue, s.state.Mode.Type)
}

func (s *DialogueTestSuite) TestGatedChoiceIgnored() {
	s.addPartyMember("Hero")
	s.addTree(&entities.DialogueTree{
		ID:       5,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Show me gold.",
				entities.DialogueChoice{
					Text:         "Here is 500 gold.",
					EndsDialogue: true,
					Conditions: []entities.DialogueCondition{
						{Type: entities.CondHasGold, Amount: 500},
					},
				},
			),
		},
	})
	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 5})
	s.Require().NoError(err)

	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().False(out.Ended)
	s.Assert().Equal(entities.ModeDialogue, s.state.Mode.Type)

	s.state.Party.Gold = 500
	out, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().True(out.Ended)
}

func (s *DialogueTestSuite) TestActionsMutateState() {
	member := s.addPartyMember("Hero")
	s.state.Party.Gold = 100
	s.Require().NoError(member.AddItem(7, 2))

	s.addTree(&entities.DialogueTree{
		ID:       6,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Trade?",
				entities.DialogueChoice{
					Text:         "Deal.",
					EndsDialogue: true,
					Actions: []entities.DialogueAction{
						{Type: entities.ActionTakeItems, Items: []entities.ItemGrant{{ItemID: 7, Quantity: 2}}},
						{Type: entities.ActionGiveGold, Amount: 50},
						{Type: entities.ActionGiveItems, Items: []entities.ItemGrant{{ItemID: 9, Quantity: 1}}},
						{Type: entities.ActionGrantExperience, Amount: 25},
					},
				},
			),
		},
	})

	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 6})
	s.Require().NoError(err)
	_, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)

	s.Assert().Equal(int32(0), member.CountItem(7))
	s.Assert().Equal(int32(1), member.CountItem(9))
	s.Assert().Equal(int32(150), s.state.Party.Gold)
	s.Assert().Equal(int64(25), member.Experience)
}

// Item and experience grants always target the leading party slot, even when
// that member is dead.
func (s *DialogueTestSuite) TestActionsTargetFirstMember() {
	fallen := s.addPartyMember("Fallen")
	fallen.Conditions = entities.ConditionDead
	living := s.addPartyMember("Hero")

	s.addTree(&entities.DialogueTree{
		ID:       13,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "For the fallen.",
				entities.DialogueChoice{
					Text:         "Take it.",
					EndsDialogue: true,
					Actions: []entities.DialogueAction{
						{Type: entities.ActionGiveItems, Items: []entities.ItemGrant{{ItemID: 9, Quantity: 1}}},
						{Type: entities.ActionGrantExperience, Amount: 25},
					},
				},
			),
		},
	})

	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 13})
	s.Require().NoError(err)
	_, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)

	s.Assert().Equal(int32(1), fallen.CountItem(9))
	s.Assert().Equal(int64(25), fallen.Experience)
	s.Assert().Equal(int32(0), living.CountItem(9))
	s.Assert().Equal(int64(0), living.Experience)
}

func (s *DialogueTestSuite) TestFlagAndReputationConditions() {
	s.addPartyMember("Hero")
	s.addTree(&entities.DialogueTree{
		ID:       7,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Choose.",
				entities.DialogueChoice{
					Text:         "Needs flag unset.",
					EndsDialogue: true,
					Conditions: []entities.DialogueCondition{
						{Type: entities.CondFlagSet, Flag: "met_king", FlagValue: false},
					},
				},
				entities.DialogueChoice{
					Text:         "Needs flag set.",
					EndsDialogue: true,
					Conditions: []entities.DialogueCondition{
						{Type: entities.CondFlagSet, Flag: "met_king", FlagValue: true},
					},
				},
				entities.DialogueChoice{
					Text:         "Needs reputation.",
					EndsDialogue: true,
					Conditions: []entities.DialogueCondition{
						{Type: entities.CondReputationThreshold, Faction: "guard", Threshold: 10},
					},
				},
			),
		},
	})
	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 7})
	s.Require().NoError(err)

	// Asking for a set flag or a reputation can never succeed yet.
	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 1})
	s.Require().NoError(err)
	s.Assert().False(out.Ended)
	out, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 2})
	s.Require().NoError(err)
	s.Assert().False(out.Ended)

	out, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().True(out.Ended)
}

func (s *DialogueTestSuite) TestBooleanCombinators() {
	s.addPartyMember("Hero")
	s.state.Party.Gold = 100

	and := entities.DialogueCondition{Type: entities.CondAnd} // empty And is true
	or := entities.DialogueCondition{Type: entities.CondOr}   // empty Or is false
	not := entities.DialogueCondition{
		Type:  entities.CondNot,
		Child: &entities.DialogueCondition{Type: entities.CondHasGold, Amount: 500},
	}

	s.addTree(&entities.DialogueTree{
		ID:       8,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Choose.",
				entities.DialogueChoice{Text: "and", EndsDialogue: true, Conditions: []entities.DialogueCondition{and}},
				entities.DialogueChoice{Text: "or", EndsDialogue: true, Conditions: []entities.DialogueCondition{or}},
				entities.DialogueChoice{Text: "not", EndsDialogue: true, Conditions: []entities.DialogueCondition{not}},
			),
		},
	})
	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 8})
	s.Require().NoError(err)

	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 1})
	s.Require().NoError(err)
	s.Assert().False(out.Ended, "empty Or never holds")

	out, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 2})
	s.Require().NoError(err)
	s.Assert().True(out.Ended, "Not(HasGold 500) holds at 100 gold")
}

func (s *DialogueTestSuite) TestSimpleDialogueAnyChoiceEnds() {
	_, err := s.svc.SimpleDialogue(s.ctx, &dialogue.SimpleDialogueInput{
		State: s.state, Text: "A sign reads: beware.", SpeakerName: "Sign",
	})
	s.Require().NoError(err)
	s.Assert().Equal(entities.ModeDialogue, s.state.Mode.Type)

	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().True(out.Ended)
	s.Assert().Equal(entities.ModeExploration, s.state.Mode.Type)
}

func (s *DialogueTestSuite) TestRecruitment() {
	s.Require().NoError(s.store.AddClass(testutils.CreateTestClass("knight", 10)))
	s.Require().NoError(s.store.AddCharacter(testutils.CreateTestCharacterDefinition("test_knight", "Test Knight")))

	recruitTree := &entities.DialogueTree{
		ID:       9,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Will you have me?",
				entities.DialogueChoice{
					Text:         "Join us.",
					EndsDialogue: true,
					Actions: []entities.DialogueAction{
						{Type: entities.ActionRecruitToParty, CharacterID: "test_knight"},
					},
				},
			),
		},
	}
	s.addTree(recruitTree)

	m := &entities.Map{ID: 3, Name: "Field", Events: []entities.MapEvent{{
		Type:     entities.MapEventRecruit,
		Position: entities.Position{X: 5, Y: 5},
	}}}
	s.state.Maps[3] = m

	rc := &entities.RecruitmentContext{
		CharacterID: "test_knight",
		MapID:       3,
		Position:    entities.Position{X: 5, Y: 5},
	}
	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{
		State: s.state, TreeID: 9, RecruitmentContext: rc,
	})
	s.Require().NoError(err)
	_, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)

	s.Assert().Equal(1, s.state.Party.Size())
	s.Assert().Equal("Test Knight", s.state.Party.Members[0].Name)
	s.Assert().True(s.state.Encountered("test_knight"))
	s.Assert().Empty(m.Events, "recruitment event removed from the map")

	// Running the same recruitment again is a no-op.
	_, err = s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 9})
	s.Require().NoError(err)
	_, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().Equal(1, s.state.Party.Size())
}

func (s *DialogueTestSuite) TestRecruitToInn() {
	s.Require().NoError(s.store.AddNPC(&entities.NPC{
		ID: "innkeep", Name: "Greta", IsInnkeeper: true,
	}))
	s.Require().NoError(s.store.AddCharacter(&entities.CharacterDefinition{
		ID:      "spare_hand",
		Name:    "Spare Hand",
		ClassID: "robber",
		RaceID:  "human",
	}))
	s.addTree(&entities.DialogueTree{
		ID:       10,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Send them over.",
				entities.DialogueChoice{
					Text:         "Do it.",
					EndsDialogue: true,
					Actions: []entities.DialogueAction{
						{Type: entities.ActionRecruitToInn, CharacterID: "spare_hand", InnkeeperID: "innkeep"},
					},
				},
			),
		},
	})

	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 10})
	s.Require().NoError(err)
	_, err = s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)

	s.Assert().Equal(0, s.state.Party.Size())
	s.Require().Equal(1, s.state.Roster.Size())
	s.Assert().Equal(entities.LocationAtInn, s.state.Roster.Locations[0].Type)
	s.Assert().True(s.state.Encountered("spare_hand"))
}

func (s *DialogueTestSuite) TestDanglingTargetEndsDialogue() {
	// Built without a target so structural validation passes, then pointed
	// at a missing node to exercise the runtime guard.
	tree := &entities.DialogueTree{
		ID:       11,
		RootNode: 1,
		Nodes: map[entities.NodeID]entities.DialogueNode{
			1: node(1, "Hi", entities.DialogueChoice{Text: "Next"}),
		},
	}
	s.addTree(tree)
	_, err := s.svc.Start(s.ctx, &dialogue.StartInput{State: s.state, TreeID: 11})
	s.Require().NoError(err)

	n := tree.Nodes[1]
	n.Choices[0].TargetNode = target(42)
	tree.Nodes[1] = n

	out, err := s.svc.SelectChoice(s.ctx, &dialogue.SelectChoiceInput{State: s.state, ChoiceIndex: 0})
	s.Require().NoError(err)
	s.Assert().True(out.Ended)
	s.Assert().Equal(entities.ModeExploration, s.state.Mode.Type)
}
