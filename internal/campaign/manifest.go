// Package campaign reads and writes campaign directories: the manifest with
// its defaults, the per-kind content data files, and the maps directory.
package campaign

import (
	"encoding/json"
	"os"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
)

// Difficulty is the campaign difficulty setting.
type Difficulty string

// Difficulty constants
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHard   Difficulty = "Hard"
	DifficultyBrutal Difficulty = "Brutal"
)

// Manifest defaults
const (
	DefaultStartingInnkeeper = "tutorial_innkeeper_town"
	DefaultMaxPartySize      = 6
	DefaultMaxRosterSize     = 20
	DefaultStartingLevel     = 1
	DefaultMaxLevel          = 20

	DefaultItemsFile         = "data/items.json"
	DefaultSpellsFile        = "data/spells.json"
	DefaultMonstersFile      = "data/monsters.json"
	DefaultClassesFile       = "data/classes.json"
	DefaultRacesFile         = "data/races.json"
	DefaultCharactersFile    = "data/characters.json"
	DefaultMapsDir           = "maps"
	DefaultQuestsFile        = "data/quests.json"
	DefaultDialogueFile      = "data/dialogues.json"
	DefaultConditionsFile    = "data/conditions.json"
	DefaultNpcsFile          = "data/npcs.json"
	DefaultProficienciesFile = "data/proficiencies.json"
)

// StartingGoldMax is the warning threshold for authored starting gold.
const StartingGoldMax = 100_000

// Manifest is the campaign.json root document: identity, configuration, and
// the relative paths of every content data file.
type Manifest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Version       string `json:"version"`
	Author        string `json:"author,omitempty"`
	Description   string `json:"description,omitempty"`
	EngineVersion string `json:"engine_version,omitempty"`

	StartingMap       string             `json:"starting_map,omitempty"`
	StartingPosition  entities.Position  `json:"starting_position,omitempty"`
	StartingDirection entities.Direction `json:"starting_direction,omitempty"`
	StartingGold      int32              `json:"starting_gold,omitempty"`
	StartingFood      int32              `json:"starting_food,omitempty"`
	StartingInnkeeper string             `json:"starting_innkeeper,omitempty"`

	MaxPartySize       int32      `json:"max_party_size,omitempty"`
	MaxRosterSize      int32      `json:"max_roster_size,omitempty"`
	Difficulty         Difficulty `json:"difficulty,omitempty"`
	Permadeath         bool       `json:"permadeath,omitempty"`
	AllowMulticlassing bool       `json:"allow_multiclassing,omitempty"`
	StartingLevel      int32      `json:"starting_level,omitempty"`
	MaxLevel           int32      `json:"max_level,omitempty"`

	ItemsFile         string `json:"items_file,omitempty"`
	SpellsFile        string `json:"spells_file,omitempty"`
	MonstersFile      string `json:"monsters_file,omitempty"`
	ClassesFile       string `json:"classes_file,omitempty"`
	RacesFile         string `json:"races_file,omitempty"`
	CharactersFile    string `json:"characters_file,omitempty"`
	MapsDir           string `json:"maps_dir,omitempty"`
	QuestsFile        string `json:"quests_file,omitempty"`
	DialogueFile      string `json:"dialogue_file,omitempty"`
	ConditionsFile    string `json:"conditions_file,omitempty"`
	NpcsFile          string `json:"npcs_file,omitempty"`
	ProficienciesFile string `json:"proficiencies_file,omitempty"`
}

// ApplyDefaults fills every absent optional field with its named default.
// Loading never fails on a missing field that has a default.
func (m *Manifest) ApplyDefaults() {
	if m.StartingInnkeeper == "" {
		m.StartingInnkeeper = DefaultStartingInnkeeper
	}
	if m.MaxPartySize == 0 {
		m.MaxPartySize = DefaultMaxPartySize
	}
	if m.MaxRosterSize == 0 {
		m.MaxRosterSize = DefaultMaxRosterSize
	}
	if m.Difficulty == "" {
		m.Difficulty = DifficultyNormal
	}
	if m.StartingLevel == 0 {
		m.StartingLevel = DefaultStartingLevel
	}
	if m.MaxLevel == 0 {
		m.MaxLevel = DefaultMaxLevel
	}
	if m.ItemsFile == "" {
		m.ItemsFile = DefaultItemsFile
	}
	if m.SpellsFile == "" {
		m.SpellsFile = DefaultSpellsFile
	}
	if m.MonstersFile == "" {
		m.MonstersFile = DefaultMonstersFile
	}
	if m.ClassesFile == "" {
		m.ClassesFile = DefaultClassesFile
	}
	if m.RacesFile == "" {
		m.RacesFile = DefaultRacesFile
	}
	if m.CharactersFile == "" {
		m.CharactersFile = DefaultCharactersFile
	}
	if m.MapsDir == "" {
		m.MapsDir = DefaultMapsDir
	}
	if m.QuestsFile == "" {
		m.QuestsFile = DefaultQuestsFile
	}
	if m.DialogueFile == "" {
		m.DialogueFile = DefaultDialogueFile
	}
	if m.ConditionsFile == "" {
		m.ConditionsFile = DefaultConditionsFile
	}
	if m.NpcsFile == "" {
		m.NpcsFile = DefaultNpcsFile
	}
	if m.ProficienciesFile == "" {
		m.ProficienciesFile = DefaultProficienciesFile
	}
}

// DataFiles lists the declared content file paths keyed by kind, in the
// validator's category order.
func (m *Manifest) DataFiles() []DataFile {
	return []DataFile{
		{Kind: "items", Path: m.ItemsFile},
		{Kind: "spells", Path: m.SpellsFile},
		{Kind: "conditions", Path: m.ConditionsFile},
		{Kind: "monsters", Path: m.MonstersFile},
		{Kind: "quests", Path: m.QuestsFile},
		{Kind: "classes", Path: m.ClassesFile},
		{Kind: "races", Path: m.RacesFile},
		{Kind: "characters", Path: m.CharactersFile},
		{Kind: "dialogues", Path: m.DialogueFile},
		{Kind: "npcs", Path: m.NpcsFile},
		{Kind: "proficiencies", Path: m.ProficienciesFile},
	}
}

// DataFile pairs a content kind with its declared relative path.
type DataFile struct {
	Kind string
	Path string
}

// LoadManifest reads and default-fills a campaign manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- campaign paths come from the host
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCodef(err, errors.CodeNotFound, "campaign manifest %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read campaign manifest %s", path)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument,
			"failed to parse campaign manifest %s", path)
	}

	manifest.ApplyDefaults()
	return &manifest, nil
}
