package gamestate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/pkg/clock"
	redisclient "github.com/aldervale/rpg-core/internal/redis"
)

const (
	// Key pattern: game_save:{slot}
	saveKeyPrefix = "game_save:"

	errSlotEmpty = "save slot cannot be empty"
	errStateNil  = "game state cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for game-state snapshots
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save writes a snapshot, overwriting any previous save in the slot. Saves
// never expire.
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
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

	key := r.buildKey(input.Slot)
	if err := r.client.Set(ctx, key, snapshotJSON, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store snapshot in Redis")
	}

	return &SaveOutput{Snapshot: snapshot}, nil
}

// Load reads the snapshot in a slot
func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	key := r.buildKey(input.Slot)
	snapshotJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("save slot '%s' is empty", input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to get snapshot from Redis")
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snapshot); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot")
	}

	return &LoadOutput{Snapshot: &snapshot}, nil
}

// Delete removes the snapshot in a slot
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	result := r.client.Del(ctx, r.buildKey(input.Slot))
	if result.Err() != nil {
		return nil, errors.Wrapf(result.Err(), "failed to delete snapshot from Redis")
	}

	return &DeleteOutput{Deleted: result.Val() > 0}, nil
}

// ListSlots enumerates the populated save slots in sorted order
func (r *redisRepository) ListSlots(ctx context.Context, _ ListSlotsInput) (*ListSlotsOutput, error) {
	keys, err := r.client.Keys(ctx, saveKeyPrefix+"*").Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list save slots")
	}

	slots := make([]string, 0, len(keys))
	for _, key := range keys {
		slots = append(slots, strings.TrimPrefix(key, saveKeyPrefix))
	}
	sort.Strings(slots)

	return &ListSlotsOutput{Slots: slots}, nil
}

// buildKey creates the Redis key for a save slot
func (r *redisRepository) buildKey(slot string) string {
	return fmt.Sprintf("%s%s", saveKeyPrefix, slot)
}
