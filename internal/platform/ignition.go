package platform

import (
	"path/filepath"
	"strings"
)

const (
	legacyIgnitionSpecVersionConstant  = "2.2.0"
	currentIgnitionSpecVersionConstant = "3.0.0"
)

// Disk images carry no structured metadata naming their Ignition spec, so the
// version is inferred from the image file name.
var legacyIgnitionImagePrefixes = []string{"rhcos-41", "rhcos-42", "rhcos-43"}

// DiskIgnitionVersion reports the Ignition spec version understood by the
// disk image at the supplied path.
func DiskIgnitionVersion(imagePath string) string {
	imageBaseName := filepath.Base(imagePath)
	for _, legacyPrefix := range legacyIgnitionImagePrefixes {
		if strings.HasPrefix(imageBaseName, legacyPrefix) {
			return legacyIgnitionSpecVersionConstant
		}
	}
	return currentIgnitionSpecVersionConstant
}
