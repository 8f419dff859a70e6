package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osforge/osforge/internal/digest"
	"github.com/osforge/osforge/internal/execshell"
	"github.com/osforge/osforge/internal/jsonfile"
	"github.com/osforge/osforge/internal/ostree"
	"github.com/osforge/osforge/internal/report"
	"github.com/osforge/osforge/internal/timestamp"
)

const (
	importCommandUseConstant               = "import-commit"
	importCommandShortDescriptionConstant  = "Import OSTree commit tarballs into a local repository"
	importCommandLongDescriptionConstant   = "import-commit materializes compressed commit archives into an archive-mode OSTree repository, skipping commits that are already fully present."
	repositoryFlagNameConstant             = "repo"
	repositoryFlagUsageConstant            = "Path to the OSTree repository."
	commitFlagNameConstant                 = "commit"
	commitFlagUsageConstant                = "Commit reference to import."
	tarballFlagNameConstant                = "tarball"
	tarballFlagUsageConstant               = "Path to the commit tarball."
	forceFlagNameConstant                  = "force"
	forceFlagUsageConstant                 = "Re-import the commit even when it is already present."
	planFlagNameConstant                   = "plan"
	planFlagUsageConstant                  = "Path to a YAML import plan listing commits and tarballs."
	recordFlagNameConstant                 = "record"
	recordFlagUsageConstant                = "Write a JSON import record to this path."
	commitSelectionRequiredMessageConstant = "provide --commit and --tarball, or --plan"
	commitSelectionConflictMessageConstant = "--plan cannot be combined with --commit or --tarball"
	executorCreationErrorTemplateConstant  = "unable to construct shell executor: %w"
	importerCreationErrorTemplateConstant  = "unable to construct importer: %w"
	planLoadErrorTemplateConstant          = "unable to load import plan: %w"
	recordWriteErrorTemplateConstant       = "unable to write import record: %w"
	tarballDigestErrorTemplateConstant     = "unable to digest tarball %s: %w"
	alreadyPresentInfoTemplateConstant     = "commit %s already present in %s"
)

type importCommandOptions struct {
	repositoryPath string
	commit         string
	tarballPath    string
	force          bool
	planPath       string
	recordPath     string
}

// ImportRecordEntry documents a single materialized commit.
type ImportRecordEntry struct {
	Commit        string `json:"commit"`
	Tarball       string `json:"tarball"`
	TarballSHA256 string `json:"tarball-sha256"`
	CompletedAt   string `json:"completed-at"`
}

// ImportRecord documents the outcome of an import invocation.
type ImportRecord struct {
	Repository string              `json:"repository"`
	Imports    []ImportRecordEntry `json:"imports"`
}

func registerImportFlags(flagSet *pflag.FlagSet, options *importCommandOptions) {
	flagSet.StringVar(&options.repositoryPath, repositoryFlagNameConstant, "", repositoryFlagUsageConstant)
	flagSet.StringVar(&options.commit, commitFlagNameConstant, "", commitFlagUsageConstant)
	flagSet.StringVar(&options.tarballPath, tarballFlagNameConstant, "", tarballFlagUsageConstant)
	flagSet.BoolVar(&options.force, forceFlagNameConstant, false, forceFlagUsageConstant)
	flagSet.StringVar(&options.planPath, planFlagNameConstant, "", planFlagUsageConstant)
	flagSet.StringVar(&options.recordPath, recordFlagNameConstant, "", recordFlagUsageConstant)
}

func newImportCommand(application *CLIApplication) *cobra.Command {
	commandOptions := &importCommandOptions{}

	importCommand := &cobra.Command{
		Use:   importCommandUseConstant,
		Short: importCommandShortDescriptionConstant,
		Long:  importCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runImportCommand(command, application, commandOptions)
		},
	}

	registerImportFlags(importCommand.Flags(), commandOptions)

	return importCommand
}

func resolvePlannedImports(options *importCommandOptions) ([]ostree.PlannedImport, error) {
	planRequested := len(options.planPath) > 0
	singleImportRequested := len(options.commit) > 0 || len(options.tarballPath) > 0

	if planRequested && singleImportRequested {
		return nil, errors.New(commitSelectionConflictMessageConstant)
	}

	if planRequested {
		importPlan, planError := ostree.LoadPlan(options.planPath)
		if planError != nil {
			return nil, fmt.Errorf(planLoadErrorTemplateConstant, planError)
		}
		return importPlan.Imports, nil
	}

	if len(options.commit) == 0 || len(options.tarballPath) == 0 {
		return nil, errors.New(commitSelectionRequiredMessageConstant)
	}

	return []ostree.PlannedImport{{Commit: options.commit, Tarball: options.tarballPath}}, nil
}

func runImportCommand(command *cobra.Command, application *CLIApplication, options *importCommandOptions) error {
	logger, loggerError := application.Logger()
	if loggerError != nil {
		return loggerError
	}

	plannedImports, planResolutionError := resolvePlannedImports(options)
	if planResolutionError != nil {
		return planResolutionError
	}

	repositoryPath := options.repositoryPath
	if len(repositoryPath) == 0 {
		repositoryPath = application.ImportRepositoryPath()
	}
	repository, repositoryError := ostree.NewRepository(repositoryPath)
	if repositoryError != nil {
		return repositoryError
	}

	executor, executorError := execshell.NewShellExecutorWithEchoWriter(logger, execshell.NewOSCommandRunner(), command.OutOrStdout())
	if executorError != nil {
		return fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}
	importer, importerError := ostree.NewImporter(logger, executor)
	if importerError != nil {
		return fmt.Errorf(importerCreationErrorTemplateConstant, importerError)
	}

	reporter := report.NewReporter(command.ErrOrStderr(), nil)
	recordEntries := make([]ImportRecordEntry, 0, len(plannedImports))

	for _, plannedImport := range plannedImports {
		importResult, importError := importer.Import(command.Context(), ostree.ImportRequest{
			Repository:  repository,
			Commit:      plannedImport.Commit,
			TarballPath: plannedImport.Tarball,
			Force:       options.force,
		})
		if importError != nil {
			return importError
		}

		if importResult.AlreadyPresent {
			reporter.Info(fmt.Sprintf(alreadyPresentInfoTemplateConstant, importResult.Commit, repository.Path))
		}

		if len(options.recordPath) > 0 {
			tarballDigest, digestError := digest.SHA256File(plannedImport.Tarball)
			if digestError != nil {
				return fmt.Errorf(tarballDigestErrorTemplateConstant, plannedImport.Tarball, digestError)
			}
			recordEntries = append(recordEntries, ImportRecordEntry{
				Commit:        importResult.Commit,
				Tarball:       plannedImport.Tarball,
				TarballSHA256: tarballDigest,
				CompletedAt:   timestamp.Now(),
			})
		}
	}

	if len(options.recordPath) > 0 {
		importRecord := ImportRecord{Repository: repository.Path, Imports: recordEntries}
		if recordError := jsonfile.Write(options.recordPath, importRecord); recordError != nil {
			return fmt.Errorf(recordWriteErrorTemplateConstant, recordError)
		}
	}

	return nil
}
