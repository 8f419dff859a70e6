// Package jsonfile persists JSON documents with atomic replace semantics.
//
// Writes land in a temporary file beside the destination and are renamed into
// place, so readers observe either the previous document or the complete new
// one, never a partial write.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	documentIndentConstant              = "    "
	documentIndentPrefixConstant        = ""
	temporaryFilePatternConstant        = ".jsonfile-*"
	documentFilePermissions             = os.FileMode(0o644)
	serializeErrorTemplateConstant      = "unable to serialize document for %s: %w"
	temporaryFileErrorTemplateConstant  = "unable to create temporary file in %s: %w"
	temporaryWriteErrorTemplateConstant = "unable to write temporary file %s: %w"
	permissionsErrorTemplateConstant    = "unable to set permissions on %s: %w"
	renameErrorTemplateConstant         = "unable to replace %s: %w"
	openErrorTemplateConstant           = "unable to open %s: %w"
	decodeErrorTemplateConstant         = "unable to decode %s: %w"
	trailingNewlineConstant             = "\n"
)

// Write serializes the document as indented JSON and atomically replaces the
// file at the supplied path. The destination is left untouched when any step
// fails, and the temporary file never survives a failure.
func Write(path string, document any) error {
	serializedDocument, serializeError := json.MarshalIndent(document, documentIndentPrefixConstant, documentIndentConstant)
	if serializeError != nil {
		return fmt.Errorf(serializeErrorTemplateConstant, path, serializeError)
	}
	serializedDocument = append(serializedDocument, trailingNewlineConstant...)

	destinationDirectory := filepath.Dir(path)
	temporaryFile, temporaryFileError := os.CreateTemp(destinationDirectory, temporaryFilePatternConstant)
	if temporaryFileError != nil {
		return fmt.Errorf(temporaryFileErrorTemplateConstant, destinationDirectory, temporaryFileError)
	}
	temporaryPath := temporaryFile.Name()

	if _, writeError := temporaryFile.Write(serializedDocument); writeError != nil {
		temporaryFile.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf(temporaryWriteErrorTemplateConstant, temporaryPath, writeError)
	}

	if permissionsError := temporaryFile.Chmod(documentFilePermissions); permissionsError != nil {
		temporaryFile.Close()
		os.Remove(temporaryPath)
		return fmt.Errorf(permissionsErrorTemplateConstant, temporaryPath, permissionsError)
	}

	if closeError := temporaryFile.Close(); closeError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(temporaryWriteErrorTemplateConstant, temporaryPath, closeError)
	}

	if renameError := os.Rename(temporaryPath, path); renameError != nil {
		os.Remove(temporaryPath)
		return fmt.Errorf(renameErrorTemplateConstant, path, renameError)
	}

	return nil
}

// Load reads the file at the supplied path and decodes it as JSON.
func Load(path string) (any, error) {
	documentFile, openError := os.Open(path)
	if openError != nil {
		return nil, fmt.Errorf(openErrorTemplateConstant, path, openError)
	}
	defer documentFile.Close()

	var decodedDocument any
	if decodeError := json.NewDecoder(documentFile).Decode(&decodedDocument); decodeError != nil {
		return nil, fmt.Errorf(decodeErrorTemplateConstant, path, decodeError)
	}

	return decodedDocument, nil
}
