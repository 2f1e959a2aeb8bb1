package entities

// TileType identifies the terrain of a map tile.
type TileType string

// Tile constants
const (
	TileGround TileType = "Ground"
	TileWall   TileType = "Wall"
	TileWater  TileType = "Water"
	TileDoor   TileType = "Door"
)

// Tile is a single cell of a map grid.
type Tile struct {
	Type     TileType `json:"type"`
	Passable bool     `json:"passable"`
	Outdoor  bool     `json:"outdoor,omitempty"`
}

// MapEventType discriminates map event variants.
type MapEventType string

// Map event constants
const (
	MapEventEncounter  MapEventType = "Encounter"
	MapEventTreasure   MapEventType = "Treasure"
	MapEventDialogue   MapEventType = "Dialogue"
	MapEventRecruit    MapEventType = "Recruit"
	MapEventTransition MapEventType = "Transition"
)

// MapEvent is something placed on a map tile that fires when entered.
type MapEvent struct {
	Type        MapEventType `json:"type"`
	Position    Position     `json:"position"`
	DialogueID  *int32       `json:"dialogue_id,omitempty"`
	CharacterID string       `json:"character_id,omitempty"`
	MonsterIDs  []int32      `json:"monster_ids,omitempty"`
	TargetMap   *int32       `json:"target_map,omitempty"`
	TargetPos   *Position    `json:"target_pos,omitempty"`
}

// Map is a content record for a playable area. Map authoring lives in the
// editor; the core only needs identity, dimensions, and the event list.
type Map struct {
	ID     int32      `json:"id"`
	Name   string     `json:"name"`
	Width  int32      `json:"width"`
	Height int32      `json:"height"`
	Tiles  []Tile     `json:"tiles,omitempty"`
	Events []MapEvent `json:"events,omitempty"`
}

// RemoveEventAt deletes every event on the given tile and reports whether
// anything was removed.
func (m *Map) RemoveEventAt(pos Position) bool {
	removed := false
	kept := m.Events[:0]
	for _, ev := range m.Events {
		if ev.Position == pos {
			removed = true
			continue
		}
		kept = append(kept, ev)
	}
	m.Events = kept
	return removed
}
