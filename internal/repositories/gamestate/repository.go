// Package gamestate provides repository interface and types for persisted
// game-state snapshots (save slots).
package gamestate

import (
	"context"
	"time"

	"github.com/aldervale/rpg-core/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/aldervale/rpg-core/internal/repositories/gamestate Repository

// Snapshot is one saved game: the full game state plus bookkeeping.
type Snapshot struct {
	// Slot names the save (e.g. "autosave", "slot_1")
	Slot string `json:"slot"`

	// CampaignID ties the save to the campaign it was made in
	CampaignID string `json:"campaign_id,omitempty"`

	// State is the complete game state at save time
	State *entities.GameState `json:"state"`

	// SavedAt is when the snapshot was written
	SavedAt time.Time `json:"saved_at"`
}

// SaveInput contains parameters for writing a snapshot
type SaveInput struct {
	Slot       string
	CampaignID string
	State      *entities.GameState
}

// SaveOutput contains the result of writing a snapshot
type SaveOutput struct {
	Snapshot *Snapshot
}

// LoadInput contains parameters for reading a snapshot
type LoadInput struct {
	Slot string
}

// LoadOutput contains the result of reading a snapshot
type LoadOutput struct {
	Snapshot *Snapshot
}

// DeleteInput contains parameters for removing a snapshot
type DeleteInput struct {
	Slot string
}

// DeleteOutput contains the result of removing a snapshot
type DeleteOutput struct {
	Deleted bool
}

// ListSlotsInput contains parameters for enumerating saves
type ListSlotsInput struct{}

// ListSlotsOutput lists the populated save slots in sorted order
type ListSlotsOutput struct {
	Slots []string
}

// Repository defines the interface for game-state snapshot storage
type Repository interface {
	// Save writes a snapshot, overwriting any previous save in the slot
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Load reads the snapshot in a slot
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete removes the snapshot in a slot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListSlots enumerates the populated save slots
	ListSlots(ctx context.Context, input ListSlotsInput) (*ListSlotsOutput, error)
}
