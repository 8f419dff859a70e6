// Package fsutil holds small filesystem helpers shared by build commands.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	removeErrorTemplateConstant             = "unable to remove %s: %w"
	temporaryDirectoryErrorTemplateConstant = "unable to create temporary directory in %s: %w"
)

// RemoveAllowMissing deletes the file at the supplied path, treating a
// missing file as success.
func RemoveAllowMissing(path string) error {
	removeError := os.Remove(path)
	if removeError == nil || errors.Is(removeError, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf(removeErrorTemplateConstant, path, removeError)
}

// WithScopedTempDirectory creates a temporary directory under the supplied
// parent, invokes the action with its path, and removes the directory along
// with its contents regardless of the action outcome.
func WithScopedTempDirectory(parentDirectory string, namePattern string, action func(temporaryDirectory string) error) error {
	temporaryDirectory, creationError := os.MkdirTemp(parentDirectory, namePattern)
	if creationError != nil {
		return fmt.Errorf(temporaryDirectoryErrorTemplateConstant, parentDirectory, creationError)
	}
	defer os.RemoveAll(temporaryDirectory)

	return action(temporaryDirectory)
}
