package ostree

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	planPathRequiredMessageConstant     = "import plan path must be provided"
	planLoadErrorTemplateConstant       = "failed to load import plan: %w"
	planParseErrorTemplateConstant      = "failed to parse import plan: %w"
	planEmptyMessageConstant            = "import plan must define at least one import"
	planCommitRequiredTemplateConstant  = "import plan entry %d missing commit reference"
	planTarballRequiredTemplateConstant = "import plan entry %d missing tarball path"
	planDuplicateCommitTemplateConstant = "import plan defines commit %s more than once"
)

// PlannedImport pairs a commit reference with its tarball source.
type PlannedImport struct {
	Commit  string `yaml:"commit" json:"commit"`
	Tarball string `yaml:"tarball" json:"tarball"`
}

// Plan lists the commits a batch import should materialize, loaded from a
// YAML or JSON manifest.
type Plan struct {
	Imports []PlannedImport `yaml:"imports" json:"imports"`
}

// LoadPlan reads the import manifest from disk and performs basic validation.
func LoadPlan(filePath string) (Plan, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Plan{}, errors.New(planPathRequiredMessageConstant)
	}

	planContents, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Plan{}, fmt.Errorf(planLoadErrorTemplateConstant, readError)
	}

	var importPlan Plan
	if parseError := yaml.Unmarshal(planContents, &importPlan); parseError != nil {
		return Plan{}, fmt.Errorf(planParseErrorTemplateConstant, parseError)
	}

	if validationError := importPlan.validate(); validationError != nil {
		return Plan{}, validationError
	}

	return importPlan, nil
}

func (plan Plan) validate() error {
	if len(plan.Imports) == 0 {
		return errors.New(planEmptyMessageConstant)
	}

	seenCommits := map[string]struct{}{}
	for entryIndex, plannedImport := range plan.Imports {
		trimmedCommit := strings.TrimSpace(plannedImport.Commit)
		if len(trimmedCommit) == 0 {
			return fmt.Errorf(planCommitRequiredTemplateConstant, entryIndex)
		}
		if len(strings.TrimSpace(plannedImport.Tarball)) == 0 {
			return fmt.Errorf(planTarballRequiredTemplateConstant, entryIndex)
		}
		if _, alreadySeen := seenCommits[trimmedCommit]; alreadySeen {
			return fmt.Errorf(planDuplicateCommitTemplateConstant, trimmedCommit)
		}
		seenCommits[trimmedCommit] = struct{}{}
	}

	return nil
}
