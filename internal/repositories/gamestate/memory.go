package gamestate

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/pkg/clock"
)

// MemoryConfig holds the configuration for the in-memory repository
type MemoryConfig struct {
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *MemoryConfig) Validate() error {
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type memoryRepository struct {
	clock clock.Clock

	mu    sync.RWMutex
	saves map[string][]byte
}

// NewMemoryRepository creates an in-memory repository for game-state
// snapshots, used for tests and campaigns played without persistence.
func NewMemoryRepository(cfg *MemoryConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &memoryRepository{
		clock: cfg.Clock,
		saves: make(map[string][]byte),
	}, nil
}

// Ensure memoryRepository implements Repository
var _ Repository = (*memoryRepository)(nil)

// Save writes a snapshot, overwriting any previous save in the slot.
// Snapshots are stored serialized so later mutations of the live state
// cannot leak into old saves.
func (r *memoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}

	snapshot := &Snapshot{
		Slot:       input.Slot,
		CampaignID: input.CampaignID,
		State:      input.State,
		SavedAt:    r.clock.Now(),
	}
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	r.mu.Lock()
	r.saves[input.Slot] = snapshotJSON
	r.mu.Unlock()

	return &SaveOutput{Snapshot: snapshot}, nil
}

// Load reads the snapshot in a slot
func (r *memoryRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	r.mu.RLock()
	snapshotJSON, ok := r.saves[input.Slot]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("save slot '%s' is empty", input.Slot)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(snapshotJSON, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	return &LoadOutput{Snapshot: &snapshot}, nil
}

// Delete removes the snapshot in a slot
func (r *memoryRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	r.mu.Lock()
	_, ok := r.saves[input.Slot]
	delete(r.saves, input.Slot)
	r.mu.Unlock()

	return &DeleteOutput{Deleted: ok}, nil
}

// ListSlots enumerates the populated save slots in sorted order
func (r *memoryRepository) ListSlots(ctx context.Context, _ ListSlotsInput) (*ListSlotsOutput, error) {
	r.mu.RLock()
	slots := make([]string, 0, len(r.saves))
	for slot := range r.saves {
		slots = append(slots, slot)
	}
	r.mu.RUnlock()
	sort.Strings(slots)

	return &ListSlotsOutput{Slots: slots}, nil
}
