package ostree

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/osforge/osforge/internal/execshell"
	"github.com/osforge/osforge/internal/fsutil"
)

const (
	ostreeInitSubcommandConstant         = "init"
	ostreeShowSubcommandConstant         = "show"
	ostreePullLocalSubcommandConstant    = "pull-local"
	ostreeRepositoryFlagConstant         = "--repo"
	ostreeArchiveModeFlagConstant        = "--mode=archive"
	tarDirectoryFlagConstant             = "-C"
	tarExtractFlagConstant               = "-xf"
	extractionDirectoryPatternConstant   = "import-*"
	tarballPathRequiredMessageConstant   = "tarball path must not be empty"
	repositoryInitializeTemplateConstant = "unable to initialize repository %s: %w"
	commitProbeTemplateConstant          = "unable to query commit %s: %w"
	tarballExtractionTemplateConstant    = "unable to extract %s: %w"
	commitPullTemplateConstant           = "unable to pull commit %s into %s: %w"
	importStartedMessageConstant         = "importing commit"
	importSkippedMessageConstant         = "commit already present, skipping import"
	importCompletedMessageConstant       = "commit imported"
	logFieldRepositoryConstant           = "repository"
	logFieldCommitConstant               = "commit"
	logFieldTarballConstant              = "tarball"
	logFieldForcedConstant               = "forced"
)

// ErrTarballPathRequired reports an import request without a tarball path.
var ErrTarballPathRequired = errors.New(tarballPathRequiredMessageConstant)

// ImportRequest names the commit to materialize and its tarball source.
type ImportRequest struct {
	Repository  Repository
	Commit      string
	TarballPath string
	// Force re-imports the commit even when it is already fully present.
	Force bool
}

// ImportResult describes the outcome of an import.
type ImportResult struct {
	Commit         string
	AlreadyPresent bool
}

// Importer idempotently materializes commit tarballs into repositories.
// Imports of the same commit reference are mutually exclusive within the
// process; cross-process coordination remains the caller's responsibility.
type Importer struct {
	logger           *zap.Logger
	executor         *execshell.ShellExecutor
	commitLocksMutex sync.Mutex
	commitLocks      map[string]*sync.Mutex
}

// NewImporter validates dependencies and constructs an Importer.
func NewImporter(logger *zap.Logger, executor *execshell.ShellExecutor) (*Importer, error) {
	if logger == nil {
		return nil, execshell.ErrLoggerNotConfigured
	}
	if executor == nil {
		return nil, execshell.ErrCommandRunnerNotConfigured
	}
	return &Importer{
		logger:      logger,
		executor:    executor,
		commitLocks: map[string]*sync.Mutex{},
	}, nil
}

// EnsureRepositoryInitialized creates the repository in archive mode when it
// does not yet exist. The underlying ostree init is idempotent.
func (importer *Importer) EnsureRepositoryInitialized(executionContext context.Context, repository Repository) error {
	initializeDetails := execshell.CommandDetails{
		Arguments: []string{ostreeInitSubcommandConstant, ostreeRepositoryFlagConstant, repository.Path, ostreeArchiveModeFlagConstant},
	}
	if _, initializeError := importer.executor.ExecuteOSTree(executionContext, initializeDetails); initializeError != nil {
		return fmt.Errorf(repositoryInitializeTemplateConstant, repository.Path, initializeError)
	}
	return nil
}

// CommitPresent reports whether the commit object exists in the repository.
// The probe is side-effect free apart from its exit code: output is captured
// and the audit echo is suppressed.
func (importer *Importer) CommitPresent(executionContext context.Context, repository Repository, commitReference string) (bool, error) {
	probeDetails := execshell.CommandDetails{
		Arguments:           []string{ostreeShowSubcommandConstant, ostreeRepositoryFlagConstant, repository.Path, commitReference},
		CaptureOutput:       true,
		AllowNonZeroExit:    true,
		SuppressCommandEcho: true,
	}
	probeResult, probeError := importer.executor.ExecuteOSTree(executionContext, probeDetails)
	if probeError != nil {
		return false, fmt.Errorf(commitProbeTemplateConstant, commitReference, probeError)
	}
	return probeResult.ExitCode == 0, nil
}

// Import materializes the commit tarball into the repository. When the commit
// is already fully present and the request is not forced, the import is a
// no-op. The tarball is extracted into a temporary directory inside the
// repository so the subsequent pull can hardlink instead of copying.
func (importer *Importer) Import(executionContext context.Context, request ImportRequest) (ImportResult, error) {
	if len(strings.TrimSpace(request.Commit)) == 0 {
		return ImportResult{}, ErrCommitReferenceRequired
	}
	if len(strings.TrimSpace(request.TarballPath)) == 0 {
		return ImportResult{}, ErrTarballPathRequired
	}

	commitLock := importer.lockForCommit(request.Commit)
	commitLock.Lock()
	defer commitLock.Unlock()

	importer.logger.Debug(
		importStartedMessageConstant,
		zap.String(logFieldRepositoryConstant, request.Repository.Path),
		zap.String(logFieldCommitConstant, request.Commit),
		zap.String(logFieldTarballConstant, request.TarballPath),
		zap.Bool(logFieldForcedConstant, request.Force),
	)

	if initializeError := importer.EnsureRepositoryInitialized(executionContext, request.Repository); initializeError != nil {
		return ImportResult{}, initializeError
	}

	if !request.Force {
		commitPresent, probeError := importer.CommitPresent(executionContext, request.Repository, request.Commit)
		if probeError != nil {
			return ImportResult{}, probeError
		}
		commitPartial, markerError := request.Repository.CommitMarkedPartial(request.Commit)
		if markerError != nil {
			return ImportResult{}, markerError
		}
		if commitPresent && !commitPartial {
			importer.logger.Debug(
				importSkippedMessageConstant,
				zap.String(logFieldCommitConstant, request.Commit),
			)
			return ImportResult{Commit: request.Commit, AlreadyPresent: true}, nil
		}
	}

	extractionError := fsutil.WithScopedTempDirectory(request.Repository.Path, extractionDirectoryPatternConstant, func(extractionDirectory string) error {
		extractDetails := execshell.CommandDetails{
			Arguments: []string{tarDirectoryFlagConstant, extractionDirectory, tarExtractFlagConstant, request.TarballPath},
		}
		if _, extractError := importer.executor.ExecuteTar(executionContext, extractDetails); extractError != nil {
			return fmt.Errorf(tarballExtractionTemplateConstant, request.TarballPath, extractError)
		}

		pullDetails := execshell.CommandDetails{
			Arguments: []string{ostreePullLocalSubcommandConstant, ostreeRepositoryFlagConstant, request.Repository.Path, extractionDirectory, request.Commit},
		}
		if _, pullError := importer.executor.ExecuteOSTree(executionContext, pullDetails); pullError != nil {
			return fmt.Errorf(commitPullTemplateConstant, request.Commit, request.Repository.Path, pullError)
		}

		return nil
	})
	if extractionError != nil {
		return ImportResult{}, extractionError
	}

	importer.logger.Debug(
		importCompletedMessageConstant,
		zap.String(logFieldCommitConstant, request.Commit),
	)

	return ImportResult{Commit: request.Commit}, nil
}

func (importer *Importer) lockForCommit(commitReference string) *sync.Mutex {
	importer.commitLocksMutex.Lock()
	defer importer.commitLocksMutex.Unlock()

	commitLock, lockExists := importer.commitLocks[commitReference]
	if !lockExists {
		commitLock = &sync.Mutex{}
		importer.commitLocks[commitReference] = commitLock
	}
	return commitLock
}
