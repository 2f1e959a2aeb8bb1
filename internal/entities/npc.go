package entities

// NPC is a content record for a non-player character.
type NPC struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Portrait    string  `json:"portrait,omitempty"`
	IsInnkeeper bool    `json:"is_innkeeper,omitempty"`
	DialogueIDs []int32 `json:"dialogue_ids,omitempty"`
}

// Race is a content record for a playable race.
type Race struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	StatModifiers Stats    `json:"stat_modifiers,omitempty"`
	Proficiencies []string `json:"proficiencies,omitempty"`
}

// Proficiency is a content record for a learnable skill or weapon training.
type Proficiency struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
