// Package validation implements the cross-reference validator shared by the
// campaign loader and the editor: a pure function from loaded content and
// manifest to an ordered list of results.
package validation

// Severity classifies a validation result.
type Severity string

// Severity constants
const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
	SeverityPassed  Severity = "Passed"
)

// Category identifies which content kind or campaign aspect a result
// belongs to.
type Category string

// Category constants
const (
	CategoryItems         Category = "items"
	CategorySpells        Category = "spells"
	CategoryConditions    Category = "conditions"
	CategoryMonsters      Category = "monsters"
	CategoryMaps          Category = "maps"
	CategoryQuests        Category = "quests"
	CategoryClasses       Category = "classes"
	CategoryRaces         Category = "races"
	CategoryCharacters    Category = "characters"
	CategoryDialogues     Category = "dialogues"
	CategoryNpcs          Category = "npcs"
	CategoryProficiencies Category = "proficiencies"
	CategoryMetadata      Category = "metadata"
	CategoryConfiguration Category = "configuration"
	CategoryFilePaths     Category = "filepaths"
)

// CategoryOrder fixes the grouping order of validator output so the editor
// can render category status without sorting.
var CategoryOrder = []Category{
	CategoryItems,
	CategorySpells,
	CategoryConditions,
	CategoryMonsters,
	CategoryMaps,
	CategoryQuests,
	CategoryClasses,
	CategoryRaces,
	CategoryCharacters,
	CategoryDialogues,
	CategoryNpcs,
	CategoryProficiencies,
	CategoryMetadata,
	CategoryConfiguration,
	CategoryFilePaths,
}

// Result is one validator finding.
type Result struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	FilePath string   `json:"file_path,omitempty"`
}

// Summary counts results per severity. Errors block test play but never
// block editing.
type Summary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`
	PassedCount  int `json:"passed_count"`
}

// HasErrors reports whether any result is an Error.
func (s Summary) HasErrors() bool {
	return s.ErrorCount > 0
}

// Summarize tallies results per severity.
func Summarize(results []Result) Summary {
	var summary Summary
	for _, r := range results {
		switch r.Severity {
		case SeverityError:
			summary.ErrorCount++
		case SeverityWarning:
			summary.WarningCount++
		case SeverityInfo:
			summary.InfoCount++
		case SeverityPassed:
			summary.PassedCount++
		}
	}
	return summary
}
