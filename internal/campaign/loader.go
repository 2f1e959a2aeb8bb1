package campaign

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aldervale/rpg-core/internal/entities"
	"github.com/aldervale/rpg-core/internal/errors"
	"github.com/aldervale/rpg-core/internal/repositories/content"
)

// Data holds the raw record lists exactly as loaded, duplicates included.
// The validator consumes this form; the deduplicated Store is built from it.
type Data struct {
	Items         []*entities.Item
	Spells        []*entities.Spell
	Monsters      []*entities.Monster
	Maps          []*entities.Map
	Quests        []*entities.Quest
	Dialogues     []*entities.DialogueTree
	Conditions    []*entities.ConditionDefinition
	Npcs          []*entities.NPC
	Characters    []*entities.CharacterDefinition
	Races         []*entities.Race
	Classes       []*entities.Class
	Proficiencies []*entities.Proficiency
}

// BuildStore constructs the content database from the raw lists. Duplicate
// records keep the first occurrence; the validator reports them separately.
func (d *Data) BuildStore() *content.Store {
	store := content.NewStore()
	for _, r := range d.Items {
		_ = store.AddItem(r)
	}
	for _, r := range d.Spells {
		_ = store.AddSpell(r)
	}
	for _, r := range d.Monsters {
		_ = store.AddMonster(r)
	}
	for _, r := range d.Maps {
		_ = store.AddMap(r)
	}
	for _, r := range d.Quests {
		_ = store.AddQuest(r)
	}
	for _, r := range d.Dialogues {
		_ = store.AddDialogue(r)
	}
	for _, r := range d.Conditions {
		_ = store.AddCondition(r)
	}
	for _, r := range d.Npcs {
		_ = store.AddNPC(r)
	}
	for _, r := range d.Characters {
		_ = store.AddCharacter(r)
	}
	for _, r := range d.Races {
		_ = store.AddRace(r)
	}
	for _, r := range d.Classes {
		_ = store.AddClass(r)
	}
	for _, r := range d.Proficiencies {
		_ = store.AddProficiency(r)
	}
	return store
}

// FileError records one data file that failed to load.
type FileError struct {
	Kind string
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Kind + " file " + e.Path + ": " + e.Err.Error()
}

// Result is the outcome of loading a campaign directory. Errors holds the
// files that failed; everything else loaded and the campaign stays usable so
// the editor can open it for repair.
type Result struct {
	Manifest *Manifest
	Data     *Data
	Store    *content.Store
	Errors   []FileError
}

// Loader reads campaign directories.
type Loader struct {
	log *slog.Logger
}

// NewLoader creates a campaign loader.
func NewLoader() *Loader {
	return &Loader{log: slog.Default()}
}

// Load reads the manifest and every declared data file under dir. A broken
// manifest fails the whole load; a broken data file is recorded in
// Result.Errors and loading continues with the remaining files.
func (l *Loader) Load(dir string) (*Result, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "campaign.json"))
	if err != nil {
		return nil, err
	}

	data := &Data{}
	result := &Result{Manifest: manifest, Data: data}

	loadList(l, result, dir, "items", manifest.ItemsFile, &data.Items)
	loadList(l, result, dir, "spells", manifest.SpellsFile, &data.Spells)
	loadList(l, result, dir, "monsters", manifest.MonstersFile, &data.Monsters)
	loadList(l, result, dir, "quests", manifest.QuestsFile, &data.Quests)
	loadList(l, result, dir, "dialogues", manifest.DialogueFile, &data.Dialogues)
	loadList(l, result, dir, "conditions", manifest.ConditionsFile, &data.Conditions)
	loadList(l, result, dir, "npcs", manifest.NpcsFile, &data.Npcs)
	loadList(l, result, dir, "characters", manifest.CharactersFile, &data.Characters)
	loadList(l, result, dir, "races", manifest.RacesFile, &data.Races)
	loadList(l, result, dir, "classes", manifest.ClassesFile, &data.Classes)
	loadList(l, result, dir, "proficiencies", manifest.ProficienciesFile, &data.Proficiencies)

	l.loadMaps(result, filepath.Join(dir, manifest.MapsDir))

	result.Store = data.BuildStore()
	return result, nil
}

// loadList reads one data file into its raw record list. A missing file is
// treated as an empty kind, not an error; the validator reports the absence.
func loadList[T any](l *Loader, result *Result, dir, kind, relPath string, into *[]*T) {
	path := filepath.Join(dir, relPath)
	raw, err := os.ReadFile(path) // #nosec G304 -- campaign paths come from the host
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		result.Errors = append(result.Errors, FileError{Kind: kind, Path: relPath, Err: err})
		return
	}

	var records []*T
	if err := json.Unmarshal(raw, &records); err != nil {
		l.log.Error("failed to parse data file",
			"kind", kind,
			"path", relPath,
			"error", err)
		result.Errors = append(result.Errors, FileError{
			Kind: kind,
			Path: relPath,
			Err:  errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse failed"),
		})
		return
	}
	*into = records
}

// loadMaps discovers maps by scanning the maps directory for data files, one
// record per file, rather than inferring filenames from ids.
func (l *Loader) loadMaps(result *Result, mapsDir string) {
	dirEntries, err := os.ReadDir(mapsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		result.Errors = append(result.Errors, FileError{Kind: "maps", Path: mapsDir, Err: err})
		return
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(mapsDir, name)
		raw, err := os.ReadFile(path) // #nosec G304 -- scanned from the campaign maps dir
		if err != nil {
			result.Errors = append(result.Errors, FileError{Kind: "maps", Path: name, Err: err})
			continue
		}
		var m entities.Map
		if err := json.Unmarshal(raw, &m); err != nil {
			l.log.Error("failed to parse map file", "path", name, "error", err)
			result.Errors = append(result.Errors, FileError{
				Kind: "maps",
				Path: name,
				Err:  errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse failed"),
			})
			continue
		}
		result.Data.Maps = append(result.Data.Maps, &m)
	}
}
