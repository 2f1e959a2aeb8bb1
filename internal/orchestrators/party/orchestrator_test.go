package party_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/orchestrators/party"
	"github.com/aldervale/rpg-core/internal/repositories/content"
	"github.com/aldervale/rpg-core/internal/testutils"
)

type PartyTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *content.Store
	svc   party.Service
}

func TestPartySuite(t *testing.T) {
	suite.Run(t, new(PartyTestSuite))
}

func (s *PartyTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = content.NewStore()

	s.Require().NoError(s.store.AddClass(testutils.CreateTestClass("knight", 10)))

	svc, err := party.NewOrchestrator(&party.Config{ContentStore: s.store})
	s.Require().NoError(err)
	s.svc = svc
}

func newHero(name string) *entities.Character {
	return testutils.CreateTestCharacter(name)
}

// checkInvariants verifies the roster/party bookkeeping after any sequence
// of successful operations.
func (s *PartyTestSuite) checkInvariants(p *entities.Party, r *entities.Roster) {
	s.Assert().Equal(p.Size(), r.InPartyCount())
	s.Assert().LessOrEqual(p.Size(), entities.PartyMaxSize)
	s.Assert().LessOrEqual(r.Size(), entities.RosterMaxSize)
}

func (s *PartyTestSuite) TestRecruitAndDismissPreservesLocations() {
	a, b := newHero("A"), newHero("B")
	p := &entities.Party{}
	r := &entities.Roster{}
	r.Add(a, entities.AtInn(1))
	r.Add(b, entities.AtInn(1))

	_, err := s.svc.Recruit(s.ctx, &party.RecruitInput{Party: p, Roster: r, RosterIndex: 0})
	s.Require().NoError(err)
	s.Assert().Equal([]*entities.Character{a}, p.Members)
	s.Assert().Equal(entities.LocationInParty, r.Locations[0].Type)
	s.Assert().Equal(entities.LocationAtInn, r.Locations[1].Type)

	_, err = s.svc.Recruit(s.ctx, &party.RecruitInput{Party: p, Roster: r, RosterIndex: 1})
	s.Require().NoError(err)
	s.Assert().Equal(entities.LocationInParty, r.Locations[1].Type)
	s.checkInvariants(p, r)

	out, err := s.svc.DismissToInn(s.ctx, &party.DismissToInnInput{
		Party: p, Roster: r, PartyIndex: 0, InnID: 2,
	})
	s.Require().NoError(err)
	s.Assert().Same(a, out.Character)
	s.Assert().Equal([]*entities.Character{b}, p.Members)
	s.Assert().Equal(entities.AtInn(2), r.Locations[0])
	s.Assert().Equal(entities.LocationInParty, r.Locations[1].Type)
	s.checkInvariants(p, r)
}

func (s *PartyTestSuite) TestRecruitErrors() {
	p := &entities.Party{}
	r := &entities.Roster{}
	for i := 0; i < entities.PartyMaxSize+1; i++ {
		r.Add(newHero("H"), entities.AtInn(1))
	}
	for i := 0; i < entities.PartyMaxSize; i++ {
		_, err := s.svc.Recruit(s.ctx, &party.RecruitInput{Party: p, Roster: r, RosterIndex: i})
		s.Require().NoError(err)
	}

	// Party full.
	_, err := s.svc.Recruit(s.ctx, &party.RecruitInput{Party: p, Roster: r, RosterIndex: 6})
	s.Assert().True(errors.IsResourceExhausted(err))

	// Out of bounds.
	_, err = s.svc.Recruit(s.ctx, &party.RecruitInput{Party: p, Roster: r, RosterIndex: 99})
	s.Assert().True(errors.IsInvalidArgument(err))

	// Already in party.
	p.Members = p.Members[:entities.PartyMaxSize-1]
	r.Locations[5] = entities.AtInn(1)
	_, err = s.svc.Recruit(s.ctx, &party.RecruitInput{Party: p, Roster: r, RosterIndex: 0})
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.checkInvariants(p, r)
}

func (s *PartyTestSuite) TestDismissLastMemberFails() {
	a := newHero("A")
	p := &entities.Party{Members: []*entities.Character{a}}
	r := &entities.Roster{}
	r.Add(a, entities.InParty())

	_, err := s.svc.DismissToInn(s.ctx, &party.DismissToInnInput{
		Party: p, Roster: r, PartyIndex: 0, InnID: 1,
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.Assert().Equal(1, p.Size())
	s.Assert().Equal(entities.LocationInParty, r.Locations[0].Type)
}

func (s *PartyTestSuite) TestSwapPreservesLocation() {
	a, b, c := newHero("A"), newHero("B"), newHero("C")
	p := &entities.Party{Members: []*entities.Character{a, b}}
	r := &entities.Roster{}
	r.Add(a, entities.InParty())
	r.Add(b, entities.InParty())
	r.Add(c, entities.OnMap(7))

	out, err := s.svc.Swap(s.ctx, &party.SwapInput{
		Party: p, Roster: r, PartyIndex: 1, RosterIndex: 2,
	})
	s.Require().NoError(err)
	s.Assert().Same(c, out.Incoming)
	s.Assert().Same(b, out.Outgoing)
	// The dismissed member inherits the newcomer's old map spot.
	s.Assert().Equal(entities.OnMap(7), out.OutgoingLocation)
	s.Assert().Equal([]*entities.Character{a, c}, p.Members)
	s.Assert().Equal(entities.OnMap(7), r.Locations[1])
	s.Assert().Equal(entities.LocationInParty, r.Locations[2].Type)
	s.checkInvariants(p, r)
}

func (s *PartyTestSuite) TestSwapDefaultsToInnOne() {
	a, b := newHero("A"), newHero("B")
	p := &entities.Party{Members: []*entities.Character{a}}
	r := &entities.Roster{}
	r.Add(a, entities.InParty())
	r.Add(b, entities.Location{}) // untagged location

	out, err := s.svc.Swap(s.ctx, &party.SwapInput{
		Party: p, Roster: r, PartyIndex: 0, RosterIndex: 1,
	})
	s.Require().NoError(err)
	s.Assert().Equal(entities.AtInn(party.DefaultInnID), out.OutgoingLocation)
	s.Assert().Equal(entities.AtInn(party.DefaultInnID), r.Locations[0])
}

func (s *PartyTestSuite) TestSwapRejectsInPartyTarget() {
	a, b := newHero("A"), newHero("B")
	p := &entities.Party{Members: []*entities.Character{a, b}}
	r := &entities.Roster{}
	r.Add(a, entities.InParty())
	r.Add(b, entities.InParty())

	_, err := s.svc.Swap(s.ctx, &party.SwapInput{
		Party: p, Roster: r, PartyIndex: 0, RosterIndex: 1,
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.Assert().Equal([]*entities.Character{a, b}, p.Members)
}

func (s *PartyTestSuite) TestRecruitFromMap() {
	s.Require().NoError(s.store.AddCharacter(testutils.CreateTestCharacterDefinition("wanderer", "Wanderer")))

	state := entities.NewGameState()

	out, err := s.svc.RecruitFromMap(s.ctx, &party.RecruitFromMapInput{
		State: state, CharacterID: "wanderer",
	})
	s.Require().NoError(err)
	s.Assert().True(out.AddedToParty)
	s.Assert().Equal("Wanderer", out.Character.Name)
	s.Assert().Equal(1, state.Party.Size())
	s.Assert().Equal(1, state.Roster.Size())
	s.Assert().True(state.Encountered("wanderer"))
	s.checkInvariants(&state.Party, &state.Roster)

	// A second recruitment of the same template is rejected.
	_, err = s.svc.RecruitFromMap(s.ctx, &party.RecruitFromMapInput{
		State: state, CharacterID: "wanderer",
	})
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *PartyTestSuite) TestRecruitFromMapFullPartyGoesToInn() {
	s.Require().NoError(s.store.AddCharacter(testutils.CreateTestCharacterDefinition("latecomer", "Latecomer")))

	state := entities.NewGameState()
	for i := 0; i < entities.PartyMaxSize; i++ {
		h := newHero("H")
		state.Party.Members = append(state.Party.Members, h)
		state.Roster.Add(h, entities.InParty())
	}

	out, err := s.svc.RecruitFromMap(s.ctx, &party.RecruitFromMapInput{
		State: state, CharacterID: "latecomer",
	})
	s.Require().NoError(err)
	s.Assert().False(out.AddedToParty)
	s.Assert().Equal(party.DefaultInnID, out.InnID)
	s.Assert().Equal(entities.PartyMaxSize, state.Party.Size())
	s.Assert().Equal(entities.PartyMaxSize+1, state.Roster.Size())
	s.Assert().True(state.Encountered("latecomer"))
	s.checkInvariants(&state.Party, &state.Roster)
}

func (s *PartyTestSuite) TestRecruitFromMapUnknownCharacter() {
	state := entities.NewGameState()

	_, err := s.svc.RecruitFromMap(s.ctx, &party.RecruitFromMapInput{
		State: state, CharacterID: "nobody",
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().False(state.Encountered("nobody"))
}
