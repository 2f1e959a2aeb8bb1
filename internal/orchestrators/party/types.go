package party

import (
	"github.com/aldervale/rpg-core/internal/entities"
)

// RecruitInput moves a rostered character into the active party.
type RecruitInput struct {
	Party       *entities.Party
	Roster      *entities.Roster
	RosterIndex int
}

// RecruitOutput reports the new party size.
type RecruitOutput struct {
	Character *entities.Character
	PartySize int
}

// DismissToInnInput removes a party member and parks them at an inn.
type DismissToInnInput struct {
	Party      *entities.Party
	Roster     *entities.Roster
	PartyIndex int
	InnID      int32
}

// DismissToInnOutput returns the dismissed character.
type DismissToInnOutput struct {
	Character *entities.Character
	PartySize int
}

// SwapInput exchanges a party member for a rostered character in place.
type SwapInput struct {
	Party       *entities.Party
	Roster      *entities.Roster
	PartyIndex  int
	RosterIndex int
}

// SwapOutput reports both sides of the exchange.
type SwapOutput struct {
	Incoming *entities.Character
	Outgoing *entities.Character
	// OutgoingLocation is where the dismissed member ended up.
	OutgoingLocation entities.Location
}

// RecruitFromMapInput recruits a character template met on a map, routing
// them to the party or a fallback inn depending on capacity.
type RecruitFromMapInput struct {
	State       *entities.GameState
	CharacterID string
}

// RecruitFromMapOutput reports where the new recruit went.
type RecruitFromMapOutput struct {
	Character    *entities.Character
	AddedToParty bool
	// InnID is set when the recruit was sent to an inn instead.
	InnID int32
}
