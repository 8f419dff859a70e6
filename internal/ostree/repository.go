package ostree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	repositoryStateDirectoryNameConstant    = "state"
	partialMarkerSuffixConstant             = ".commitpartial"
	repositoryPathRequiredMessageConstant   = "repository path must not be empty"
	commitReferenceRequiredMessageConstant  = "commit reference must not be empty"
	partialMarkerInspectionTemplateConstant = "unable to inspect partial marker for commit %s: %w"
)

// Sentinel errors reported during repository and import validation.
var (
	ErrRepositoryPathRequired  = errors.New(repositoryPathRequiredMessageConstant)
	ErrCommitReferenceRequired = errors.New(commitReferenceRequiredMessageConstant)
)

// Repository identifies a directory-backed OSTree repository.
type Repository struct {
	Path string
}

// NewRepository validates the supplied path and wraps it as a Repository.
func NewRepository(repositoryPath string) (Repository, error) {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return Repository{}, ErrRepositoryPathRequired
	}
	return Repository{Path: trimmedPath}, nil
}

// PartialMarkerPath returns the sentinel file marking the commit as only
// partially pulled.
func (repository Repository) PartialMarkerPath(commitReference string) string {
	return filepath.Join(repository.Path, repositoryStateDirectoryNameConstant, commitReference+partialMarkerSuffixConstant)
}

// CommitMarkedPartial reports whether the partial marker exists for the
// supplied commit reference.
func (repository Repository) CommitMarkedPartial(commitReference string) (bool, error) {
	if len(strings.TrimSpace(commitReference)) == 0 {
		return false, ErrCommitReferenceRequired
	}

	markerInfo, statError := os.Stat(repository.PartialMarkerPath(commitReference))
	if statError != nil {
		if errors.Is(statError, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(partialMarkerInspectionTemplateConstant, commitReference, statError)
	}

	return markerInfo.Mode().IsRegular(), nil
}
