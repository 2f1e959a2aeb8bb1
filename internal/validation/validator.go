package validation

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aldervale/rpg-core/internal/campaign"
	"github.com/aldervale/rpg-core/internal/entities"
)

// Validate runs every cross-reference, metadata, configuration, and file-path
// rule against the loaded content. It performs no I/O and is deterministic:
// the same input always yields the same result list, grouped by category in
// CategoryOrder.
func Validate(data *campaign.Data, manifest *campaign.Manifest) []Result {
	v := &validator{data: data, manifest: manifest}

	for _, category := range CategoryOrder {
		switch category {
		case CategoryItems:
			v.validateItems()
		case CategorySpells:
			v.validateSpells()
		case CategoryConditions:
			v.validateConditions()
		case CategoryMonsters:
			v.validateMonsters()
		case CategoryMaps:
			v.validateMaps()
		case CategoryQuests:
			v.validateQuests()
		case CategoryClasses:
			v.validateClasses()
		case CategoryRaces:
			v.validateRaces()
		case CategoryCharacters:
			v.validateCharacters()
		case CategoryDialogues:
			v.validateDialogues()
		case CategoryNpcs:
			v.validateNpcs()
		case CategoryProficiencies:
			v.validateProficiencies()
		case CategoryMetadata:
			v.validateMetadata()
		case CategoryConfiguration:
			v.validateConfiguration()
		case CategoryFilePaths:
			v.validateFilePaths()
		}
	}

	return v.results
}

type validator struct {
	data     *campaign.Data
	manifest *campaign.Manifest
	results  []Result
}

func (v *validator) add(severity Severity, category Category, message string) {
	v.results = append(v.results, Result{Severity: severity, Category: category, Message: message})
}

func (v *validator) addFile(severity Severity, category Category, message, filePath string) {
	v.results = append(v.results, Result{
		Severity: severity,
		Category: category,
		Message:  message,
		FilePath: filePath,
	})
}

// closeCategory emits the per-category status marker: Info when the kind has
// no data, Passed when every check succeeded.
func (v *validator) closeCategory(category Category, count int, before int) {
	if count == 0 {
		v.add(SeverityInfo, category, fmt.Sprintf("No %s defined", category))
		return
	}
	if len(v.results) == before {
		v.add(SeverityPassed, category, fmt.Sprintf("All %s checks passed", category))
	}
}

func (v *validator) validateItems() {
	before := len(v.results)
	profs := v.proficiencySet()

	seen := make(map[int32]bool)
	for _, item := range v.data.Items {
		if seen[item.ID] {
			v.add(SeverityError, CategoryItems, fmt.Sprintf("Duplicate item ID: %d", item.ID))
		}
		seen[item.ID] = true

		if err := item.Validate(); err != nil {
			v.add(SeverityError, CategoryItems, err.Error())
		}
		if item.RequiredProficiency != "" && !profs[item.RequiredProficiency] {
			v.add(SeverityError, CategoryItems, fmt.Sprintf(
				"Item %d references non-existent proficiency '%s'",
				item.ID, item.RequiredProficiency))
		}
	}
	v.closeCategory(CategoryItems, len(v.data.Items), before)
}

func (v *validator) validateSpells() {
	before := len(v.results)
	conditions := make(map[string]bool)
	for _, cond := range v.data.Conditions {
		conditions[cond.ID] = true
	}

	seen := make(map[int32]bool)
	for _, spell := range v.data.Spells {
		if seen[spell.ID] {
			v.add(SeverityError, CategorySpells, fmt.Sprintf("Duplicate spell ID: %d", spell.ID))
		}
		seen[spell.ID] = true

		for _, condID := range spell.AppliedConditions {
			if !conditions[condID] {
				v.add(SeverityError, CategorySpells, fmt.Sprintf(
					"Spell %d references non-existent condition '%s'", spell.ID, condID))
			}
		}
	}
	v.closeCategory(CategorySpells, len(v.data.Spells), before)
}

func (v *validator) validateConditions() {
	before := len(v.results)
	seen := make(map[string]bool)
	for _, cond := range v.data.Conditions {
		if seen[cond.ID] {
			v.add(SeverityError, CategoryConditions, fmt.Sprintf("Duplicate condition ID: %s", cond.ID))
		}
		seen[cond.ID] = true
	}
	v.closeCategory(CategoryConditions, len(v.data.Conditions), before)
}

func (v *validator) validateMonsters() {
	before := len(v.results)
	seen := make(map[int32]bool)
	for _, monster := range v.data.Monsters {
		if seen[monster.ID] {
			v.add(SeverityError, CategoryMonsters, fmt.Sprintf("Duplicate monster ID: %d", monster.ID))
		}
		seen[monster.ID] = true
	}
	v.closeCategory(CategoryMonsters, len(v.data.Monsters), before)
}

func (v *validator) validateMaps() {
	before := len(v.results)
	seen := make(map[int32]bool)
	for _, m := range v.data.Maps {
		if seen[m.ID] {
			v.add(SeverityError, CategoryMaps, fmt.Sprintf("Duplicate map ID: %d", m.ID))
		}
		seen[m.ID] = true
	}
	v.closeCategory(CategoryMaps, len(v.data.Maps), before)
}

func (v *validator) validateQuests() {
	before := len(v.results)
	seen := make(map[int32]bool)
	for _, quest := range v.data.Quests {
		if seen[quest.ID] {
			v.add(SeverityError, CategoryQuests, fmt.Sprintf("Duplicate quest ID: %d", quest.ID))
		}
		seen[quest.ID] = true

		if err := quest.Validate(); err != nil {
			v.add(SeverityError, CategoryQuests, err.Error())
		}
	}
	v.closeCategory(CategoryQuests, len(v.data.Quests), before)
}

func (v *validator) validateClasses() {
	before := len(v.results)
	profs := v.proficiencySet()

	seen := make(map[string]bool)
	for _, class := range v.data.Classes {
		if seen[class.ID] {
			v.add(SeverityError, CategoryClasses, fmt.Sprintf("Duplicate class ID: %s", class.ID))
		}
		seen[class.ID] = true

		for _, profID := range class.Proficiencies {
			if !profs[profID] {
				v.add(SeverityError, CategoryClasses, fmt.Sprintf(
					"Class '%s' references non-existent proficiency '%s'", class.ID, profID))
			}
		}
	}
	v.closeCategory(CategoryClasses, len(v.data.Classes), before)
}

func (v *validator) validateRaces() {
	before := len(v.results)
	profs := v.proficiencySet()

	seen := make(map[string]bool)
	for _, race := range v.data.Races {
		if seen[race.ID] {
			v.add(SeverityError, CategoryRaces, fmt.Sprintf("Duplicate race ID: %s", race.ID))
		}
		seen[race.ID] = true

		for _, profID := range race.Proficiencies {
			if !profs[profID] {
				v.add(SeverityError, CategoryRaces, fmt.Sprintf(
					"Race '%s' references non-existent proficiency '%s'", race.ID, profID))
			}
		}
	}
	v.closeCategory(CategoryRaces, len(v.data.Races), before)
}

func (v *validator) validateCharacters() {
	before := len(v.results)

	classes := make(map[string]bool)
	for _, class := range v.data.Classes {
		classes[class.ID] = true
	}
	races := make(map[string]bool)
	for _, race := range v.data.Races {
		races[race.ID] = true
	}

	seen := make(map[string]bool)
	for _, character := range v.data.Characters {
		if seen[character.ID] {
			v.add(SeverityError, CategoryCharacters, fmt.Sprintf("Duplicate character ID: %s", character.ID))
		}
		seen[character.ID] = true

		if !classes[character.ClassID] {
			v.add(SeverityError, CategoryCharacters, fmt.Sprintf(
				"Character '%s' references non-existent class '%s'", character.ID, character.ClassID))
		}
		if !races[character.RaceID] {
			v.add(SeverityError, CategoryCharacters, fmt.Sprintf(
				"Character '%s' references non-existent race '%s'", character.ID, character.RaceID))
		}
	}
	v.closeCategory(CategoryCharacters, len(v.data.Characters), before)
}

func (v *validator) validateDialogues() {
	before := len(v.results)
	seen := make(map[int32]bool)
	for _, tree := range v.data.Dialogues {
		if seen[tree.ID] {
			v.add(SeverityError, CategoryDialogues, fmt.Sprintf("Duplicate dialogue ID: %d", tree.ID))
		}
		seen[tree.ID] = true

		if err := tree.ValidateStructure(); err != nil {
			v.add(SeverityError, CategoryDialogues, err.Error())
		}
	}
	v.closeCategory(CategoryDialogues, len(v.data.Dialogues), before)
}

func (v *validator) validateNpcs() {
	before := len(v.results)

	dialogues := make(map[int32]bool)
	for _, tree := range v.data.Dialogues {
		dialogues[tree.ID] = true
	}

	seen := make(map[string]bool)
	for _, npc := range v.data.Npcs {
		if seen[npc.ID] {
			v.add(SeverityError, CategoryNpcs, fmt.Sprintf("Duplicate NPC ID: %s", npc.ID))
		}
		seen[npc.ID] = true

		for _, dialogueID := range npc.DialogueIDs {
			if !dialogues[dialogueID] {
				v.add(SeverityError, CategoryNpcs, fmt.Sprintf(
					"NPC '%s' references non-existent dialogue %d", npc.ID, dialogueID))
			}
		}
	}
	v.closeCategory(CategoryNpcs, len(v.data.Npcs), before)
}

func (v *validator) validateProficiencies() {
	before := len(v.results)

	referenced := make(map[string]bool)
	for _, class := range v.data.Classes {
		for _, profID := range class.Proficiencies {
			referenced[profID] = true
		}
	}
	for _, race := range v.data.Races {
		for _, profID := range race.Proficiencies {
			referenced[profID] = true
		}
	}
	for _, item := range v.data.Items {
		if item.RequiredProficiency != "" {
			referenced[item.RequiredProficiency] = true
		}
	}

	seen := make(map[string]bool)
	for _, prof := range v.data.Proficiencies {
		if seen[prof.ID] {
			v.add(SeverityError, CategoryProficiencies, fmt.Sprintf("Duplicate proficiency ID: %s", prof.ID))
		}
		seen[prof.ID] = true

		if !referenced[prof.ID] {
			v.add(SeverityInfo, CategoryProficiencies, fmt.Sprintf(
				"Proficiency '%s' is not referenced by any class, race, or item", prof.ID))
		}
	}
	v.closeCategory(CategoryProficiencies, len(v.data.Proficiencies), before)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

func (v *validator) validateMetadata() {
	before := len(v.results)
	m := v.manifest

	if m.ID == "" {
		v.add(SeverityError, CategoryMetadata, "Campaign ID must not be empty")
	} else if !isIdentifier(m.ID) {
		v.add(SeverityError, CategoryMetadata, fmt.Sprintf(
			"Campaign ID '%s' may only contain letters, digits, and underscores", m.ID))
	}
	if m.Name == "" {
		v.add(SeverityError, CategoryMetadata, "Campaign name must not be empty")
	}
	if !strings.Contains(m.Version, ".") {
		v.add(SeverityError, CategoryMetadata, fmt.Sprintf(
			"Campaign version '%s' must contain a '.'", m.Version))
	}
	if m.Author == "" {
		v.add(SeverityWarning, CategoryMetadata, "Campaign author is empty")
	}

	if len(v.results) == before {
		v.add(SeverityPassed, CategoryMetadata, "All metadata checks passed")
	}
}

func (v *validator) validateConfiguration() {
	before := len(v.results)
	m := v.manifest

	if m.MaxPartySize < 1 || m.MaxPartySize > entities.PartyMaxSize {
		v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
			"max_party_size must be between 1 and %d, got %d", entities.PartyMaxSize, m.MaxPartySize))
	}
	if m.MaxRosterSize < m.MaxPartySize {
		v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
			"max_roster_size %d is smaller than max_party_size %d", m.MaxRosterSize, m.MaxPartySize))
	}
	if m.StartingLevel < 1 || m.StartingLevel > m.MaxLevel {
		v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
			"starting_level must be between 1 and max_level %d, got %d", m.MaxLevel, m.StartingLevel))
	}
	if m.StartingFood < 0 || m.StartingFood > entities.FoodMax {
		v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
			"starting_food must be between 0 and %d, got %d", entities.FoodMax, m.StartingFood))
	}
	if m.StartingGold > campaign.StartingGoldMax {
		v.add(SeverityWarning, CategoryConfiguration, fmt.Sprintf(
			"starting_gold %d exceeds the recommended maximum of %d", m.StartingGold, campaign.StartingGoldMax))
	}

	v.validateStartingInnkeeper()
	v.validateStartingMap()

	if len(v.results) == before {
		v.add(SeverityPassed, CategoryConfiguration, "All configuration checks passed")
	}
}

func (v *validator) validateStartingInnkeeper() {
	id := v.manifest.StartingInnkeeper
	if id == "" {
		return
	}
	for _, npc := range v.data.Npcs {
		if npc.ID != id {
			continue
		}
		if !npc.IsInnkeeper {
			v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
				"starting_innkeeper '%s' is not flagged as an innkeeper", id))
		}
		return
	}
	v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
		"starting_innkeeper references non-existent NPC '%s'", id))
}

func (v *validator) validateStartingMap() {
	value := v.manifest.StartingMap
	if value == "" {
		return
	}
	if !resolvesToMap(value, v.data.Maps) {
		v.add(SeverityError, CategoryConfiguration, fmt.Sprintf(
			"starting_map '%s' does not resolve to any loaded map", value))
	}
}

// resolvesToMap accepts a numeric id, a map_N form, a filename carrying
// either, or a name match that ignores case and treats spaces and
// underscores alike.
func resolvesToMap(value string, maps []*entities.Map) bool {
	trimmed := strings.TrimSuffix(value, filepath.Ext(value))

	for _, candidate := range []string{value, trimmed} {
		numeric := strings.TrimPrefix(candidate, "map_")
		if id, err := strconv.ParseInt(numeric, 10, 32); err == nil {
			for _, m := range maps {
				if m.ID == int32(id) {
					return true
				}
			}
		}
		normalized := normalizeName(candidate)
		for _, m := range maps {
			if normalizeName(m.Name) == normalized {
				return true
			}
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

func (v *validator) validateFilePaths() {
	before := len(v.results)

	for _, file := range v.manifest.DataFiles() {
		if file.Path == "" {
			v.addFile(SeverityError, CategoryFilePaths,
				fmt.Sprintf("%s file path must not be empty", file.Kind), file.Path)
			continue
		}
		if !strings.HasSuffix(file.Path, ".json") {
			v.addFile(SeverityWarning, CategoryFilePaths,
				fmt.Sprintf("%s file path '%s' does not end with .json", file.Kind, file.Path), file.Path)
		}
	}
	if v.manifest.MapsDir == "" {
		v.add(SeverityError, CategoryFilePaths, "maps directory must not be empty")
	}

	if len(v.results) == before {
		v.add(SeverityPassed, CategoryFilePaths, "All file path checks passed")
	}
}

func (v *validator) proficiencySet() map[string]bool {
	profs := make(map[string]bool)
	for _, prof := range v.data.Proficiencies {
		profs[prof.ID] = true
	}
	return profs
}
