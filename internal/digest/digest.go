// Package digest computes streaming content digests of files.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

const (
	readChunkSizeConstant     = 128 * 1024
	openErrorTemplateConstant = "unable to open %s: %w"
	readErrorTemplateConstant = "unable to read %s: %w"
)

// SHA256File computes the lowercase hex SHA-256 digest of the file at the
// supplied path, reading in fixed-size chunks so arbitrarily large files never
// reside fully in memory.
func SHA256File(path string) (string, error) {
	contentFile, openError := os.Open(path)
	if openError != nil {
		return "", fmt.Errorf(openErrorTemplateConstant, path, openError)
	}
	defer contentFile.Close()

	contentHash := sha256.New()
	readBuffer := make([]byte, readChunkSizeConstant)
	if _, copyError := io.CopyBuffer(contentHash, contentFile, readBuffer); copyError != nil {
		return "", fmt.Errorf(readErrorTemplateConstant, path, copyError)
	}

	return hex.EncodeToString(contentHash.Sum(nil)), nil
}
