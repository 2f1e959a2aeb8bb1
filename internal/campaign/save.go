package campaign

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Save writes the manifest and every content file under dir. The save is
// partial by contract: a failed artifact is recorded as a warning and the
// remaining artifacts are still written. The returned slice is empty on a
// clean save.
func Save(dir string, manifest *Manifest, data *Data) []string {
	var warnings []string

	warn := func(what string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s: %v", what, err))
		slog.Warn("campaign save artifact failed", "artifact", what, "error", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o750); err != nil {
		warn("data directory", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, manifest.MapsDir), 0o750); err != nil {
		warn("maps directory", err)
	}

	if err := writeJSON(filepath.Join(dir, "campaign.json"), manifest); err != nil {
		warn("campaign manifest", err)
	}

	writeList(dir, manifest.ItemsFile, data.Items, warn)
	writeList(dir, manifest.SpellsFile, data.Spells, warn)
	writeList(dir, manifest.MonstersFile, data.Monsters, warn)
	writeList(dir, manifest.QuestsFile, data.Quests, warn)
	writeList(dir, manifest.DialogueFile, data.Dialogues, warn)
	writeList(dir, manifest.ConditionsFile, data.Conditions, warn)
	writeList(dir, manifest.NpcsFile, data.Npcs, warn)
	writeList(dir, manifest.CharactersFile, data.Characters, warn)
	writeList(dir, manifest.RacesFile, data.Races, warn)
	writeList(dir, manifest.ClassesFile, data.Classes, warn)
	writeList(dir, manifest.ProficienciesFile, data.Proficiencies, warn)

	for _, m := range data.Maps {
		name := fmt.Sprintf("map_%d.json", m.ID)
		if err := writeJSON(filepath.Join(dir, manifest.MapsDir, name), m); err != nil {
			warn("map "+name, err)
		}
	}

	return warnings
}

func writeList[T any](dir, relPath string, records []*T, warn func(string, error)) {
	if err := writeJSON(filepath.Join(dir, relPath), records); err != nil {
		warn(relPath, err)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
