package entities

// PartyMaxSize caps active party membership.
const PartyMaxSize = 6

// RosterMaxSize caps total recruited characters.
const RosterMaxSize = 18

// Party is the active adventuring group with pooled resources.
type Party struct {
	Members    []*Character `json:"members"`
	Gold       int32        `json:"gold"`
	Gems       int32        `json:"gems"`
	LightUnits int32        `json:"light_units,omitempty"`
	// PositionIndex flags which member slots hold attack positions.
	PositionIndex [PartyMaxSize]bool `json:"position_index,omitempty"`
}

// Size returns the number of active members.
func (p *Party) Size() int {
	return len(p.Members)
}

// IsFull reports whether the party is at capacity.
func (p *Party) IsFull() bool {
	return len(p.Members) >= PartyMaxSize
}

// FirstMember returns the leading member regardless of condition, or nil for
// an empty party. Dialogue item and experience grants target this slot.
func (p *Party) FirstMember() *Character {
	if len(p.Members) == 0 {
		return nil
	}
	return p.Members[0]
}

// FirstLivingMember returns the first member without a fatal condition, or
// nil when nobody qualifies.
func (p *Party) FirstLivingMember() *Character {
	for _, member := range p.Members {
		if !member.IsFatal() {
			return member
		}
	}
	return nil
}

// AwardGold adds gold to the party pool, saturating.
func (p *Party) AwardGold(amount int32) {
	p.Gold = SaturatingAdd(p.Gold, amount)
}

// SpendGold removes gold from the party pool, saturating at zero.
func (p *Party) SpendGold(amount int32) {
	p.Gold = SaturatingSub(p.Gold, amount)
}

// CountItem sums charges of an item across every member's inventory.
func (p *Party) CountItem(itemID int32) int32 {
	var total int32
	for _, member := range p.Members {
		total = SaturatingAdd(total, member.CountItem(itemID))
	}
	return total
}

// LocationType discriminates where a roster character currently is.
type LocationType string

// Location constants
const (
	LocationInParty LocationType = "InParty"
	LocationAtInn   LocationType = "AtInn"
	LocationOnMap   LocationType = "OnMap"
)

// Location tags a roster entry with its current whereabouts. TownID is
// meaningful for AtInn, MapID for OnMap.
type Location struct {
	Type   LocationType `json:"type"`
	TownID int32        `json:"town_id,omitempty"`
	MapID  int32        `json:"map_id,omitempty"`
}

// AtInn builds an AtInn location.
func AtInn(townID int32) Location {
	return Location{Type: LocationAtInn, TownID: townID}
}

// OnMap builds an OnMap location.
func OnMap(mapID int32) Location {
	return Location{Type: LocationOnMap, MapID: mapID}
}

// InParty builds an InParty location.
func InParty() Location {
	return Location{Type: LocationInParty}
}

// Roster stores every recruited character with a parallel location list.
// Invariant held by the party manager: the count of InParty locations equals
// the party size.
type Roster struct {
	Characters []*Character `json:"characters"`
	Locations  []Location   `json:"locations"`
}

// Size returns the number of rostered characters.
func (r *Roster) Size() int {
	return len(r.Characters)
}

// IsFull reports whether the roster is at capacity.
func (r *Roster) IsFull() bool {
	return len(r.Characters) >= RosterMaxSize
}

// InPartyCount returns how many roster entries are flagged InParty.
func (r *Roster) InPartyCount() int {
	count := 0
	for _, loc := range r.Locations {
		if loc.Type == LocationInParty {
			count++
		}
	}
	return count
}

// NthInPartyIndex returns the roster index of the n-th (0-based) InParty
// entry in roster order, or -1 when there are fewer InParty entries.
func (r *Roster) NthInPartyIndex(n int) int {
	seen := 0
	for i, loc := range r.Locations {
		if loc.Type != LocationInParty {
			continue
		}
		if seen == n {
			return i
		}
		seen++
	}
	return -1
}

// Add appends a character with its location.
func (r *Roster) Add(c *Character, loc Location) {
	r.Characters = append(r.Characters, c)
	r.Locations = append(r.Locations, loc)
}
