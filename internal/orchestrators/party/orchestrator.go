// Package party implements the party and roster manager: recruiting,
// dismissing, and swapping characters between the active party and the
// wider roster. Every operation is atomic; a failed call leaves the party
// and roster exactly as they were.
package party

//go:generate mockgen -destination=mock/mock_service.go -package=partymock github.com/aldervale/rpg-core/internal/orchestrators/party Service

import (
	"context"
	"log/slog"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/repositories/content"
)

// DefaultInnID receives recruits and dismissals when no inn is specified.
const DefaultInnID int32 = 1

// Service defines the interface for party and roster operations
type Service interface {
	Recruit(ctx context.Context, input *RecruitInput) (*RecruitOutput, error)
	DismissToInn(ctx context.Context, input *DismissToInnInput) (*DismissToInnOutput, error)
	Swap(ctx context.Context, input *SwapInput) (*SwapOutput, error)
	RecruitFromMap(ctx context.Context, input *RecruitFromMapInput) (*RecruitFromMapOutput, error)
}

// Config holds the dependencies for the party orchestrator
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

// NewOrchestrator creates a new party orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{store: cfg.ContentStore}, nil
}

// Recruit moves the rostered character at RosterIndex into the party. The
// party and roster share the character; only the location tag changes.
func (o *orchestrator) Recruit(ctx context.Context, input *RecruitInput) (*RecruitOutput, error) {
	if input.Party == nil || input.Roster == nil {
		return nil, errors.InvalidArgument("party and roster are required")
	}
	party, roster := input.Party, input.Roster

	if party.IsFull() {
		return nil, errors.ResourceExhaustedf("party is full (%d members)", entities.PartyMaxSize)
	}
	if input.RosterIndex < 0 || input.RosterIndex >= roster.Size() {
		return nil, errors.InvalidArgumentf("roster index %d out of range", input.RosterIndex)
	}
	if roster.Locations[input.RosterIndex].Type == entities.LocationInParty {
		return nil, errors.FailedPreconditionf("%s is already in the party",
			roster.Characters[input.RosterIndex].Name)
	}

	character := roster.Characters[input.RosterIndex]
	party.Members = append(party.Members, character)
	roster.Locations[input.RosterIndex] = entities.InParty()

	slog.Info("character recruited", "name", character.Name, "party_size", party.Size())

	return &RecruitOutput{Character: character, PartySize: party.Size()}, nil
}

// DismissToInn removes the member at PartyIndex and parks them at the given
// inn. The roster entry is found by taking the N-th InParty entry in roster
// order; roster order is authoritative.
func (o *orchestrator) DismissToInn(ctx context.Context, input *DismissToInnInput) (*DismissToInnOutput, error) {
	if input.Party == nil || input.Roster == nil {
		return nil, errors.InvalidArgument("party and roster are required")
	}
	party, roster := input.Party, input.Roster

	if party.Size() <= 1 {
		return nil, errors.FailedPrecondition("cannot dismiss the last party member")
	}
	if input.PartyIndex < 0 || input.PartyIndex >= party.Size() {
		return nil, errors.InvalidArgumentf("party index %d out of range", input.PartyIndex)
	}
	rosterIndex := roster.NthInPartyIndex(input.PartyIndex)
	if rosterIndex < 0 {
		return nil, errors.Internalf("no roster entry for party slot %d", input.PartyIndex)
	}

	character := party.Members[input.PartyIndex]
	party.Members = append(party.Members[:input.PartyIndex], party.Members[input.PartyIndex+1:]...)
	roster.Locations[rosterIndex] = entities.AtInn(input.InnID)

	slog.Info("character dismissed to inn",
		"name", character.Name,
		"inn_id", input.InnID,
		"party_size", party.Size(),
	)

	return &DismissToInnOutput{Character: character, PartySize: party.Size()}, nil
}

// Swap exchanges the party member at PartyIndex for the rostered character
// at RosterIndex. The outgoing member inherits the incoming character's old
// location when it named an inn or a map, and falls back to the default inn
// otherwise.
func (o *orchestrator) Swap(ctx context.Context, input *SwapInput) (*SwapOutput, error) {
	if input.Party == nil || input.Roster == nil {
		return nil, errors.InvalidArgument("party and roster are required")
	}
	party, roster := input.Party, input.Roster

	if input.PartyIndex < 0 || input.PartyIndex >= party.Size() {
		return nil, errors.InvalidArgumentf("party index %d out of range", input.PartyIndex)
	}
	if input.RosterIndex < 0 || input.RosterIndex >= roster.Size() {
		return nil, errors.InvalidArgumentf("roster index %d out of range", input.RosterIndex)
	}
	incomingLoc := roster.Locations[input.RosterIndex]
	if incomingLoc.Type == entities.LocationInParty {
		return nil, errors.FailedPreconditionf("%s is already in the party",
			roster.Characters[input.RosterIndex].Name)
	}
	outRosterIndex := roster.NthInPartyIndex(input.PartyIndex)
	if outRosterIndex < 0 {
		return nil, errors.Internalf("no roster entry for party slot %d", input.PartyIndex)
	}

	outgoingLoc := entities.AtInn(DefaultInnID)
	if incomingLoc.Type == entities.LocationAtInn || incomingLoc.Type == entities.LocationOnMap {
		outgoingLoc = incomingLoc
	}

	outgoing := party.Members[input.PartyIndex]
	incoming := roster.Characters[input.RosterIndex]
	party.Members[input.PartyIndex] = incoming
	roster.Locations[input.RosterIndex] = entities.InParty()
	roster.Locations[outRosterIndex] = outgoingLoc

	slog.Info("party members swapped",
		"incoming", incoming.Name,
		"outgoing", outgoing.Name,
	)

	return &SwapOutput{Incoming: incoming, Outgoing: outgoing, OutgoingLocation: outgoingLoc}, nil
}

// RecruitFromMap recruits a character template encountered on a map. A full
// party sends the recruit to the default inn instead. Each template recruits
// at most once per game.
func (o *orchestrator) RecruitFromMap(ctx context.Context, input *RecruitFromMapInput) (*RecruitFromMapOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument("game state is required")
	}
	state := input.State

	if state.Encountered(input.CharacterID) {
		return nil, errors.AlreadyExistsf("character '%s' has already been recruited", input.CharacterID)
	}
	def, ok := o.store.Character(input.CharacterID)
	if !ok {
		return nil, errors.NotFoundf("character definition '%s' not found", input.CharacterID)
	}
	if state.Roster.IsFull() {
		return nil, errors.ResourceExhaustedf("roster is full (%d characters)", entities.RosterMaxSize)
	}

	class, _ := o.store.Class(def.ClassID)
	character := def.Instantiate(class)

	if !state.Party.IsFull() {
		state.Party.Members = append(state.Party.Members, character)
		state.Roster.Add(character, entities.InParty())
		state.MarkEncountered(input.CharacterID)

		slog.Info("character joined the party", "name", character.Name, "party_size", state.Party.Size())

		return &RecruitFromMapOutput{Character: character, AddedToParty: true}, nil
	}

	state.Roster.Add(character, entities.AtInn(DefaultInnID))
	state.MarkEncountered(input.CharacterID)

	slog.Info("party full, character sent to inn", "name", character.Name, "inn_id", DefaultInnID)

	return &RecruitFromMapOutput{Character: character, InnID: DefaultInnID}, nil
}
