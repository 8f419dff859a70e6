package jsonfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osforge/osforge/internal/jsonfile"
)

const (
	testDocumentFileNameConstant       = "meta.json"
	testRoundTripCaseNameConstant      = "round_trip"
	testNestedDocumentCaseNameConstant = "nested_document"
	testScalarDocumentCaseNameConstant = "scalar_document"
	testMissingDirectoryNameConstant   = "missing"
	testMalformedDocumentContentsValue = "{not json"
	testOriginalDocumentContentsValue  = "{\n    \"status\": \"original\"\n}\n"
)

func TestWriteLoadRoundTrip(testInstance *testing.T) {
	testCases := []struct {
		name     string
		document any
		expected any
	}{
		{
			name:     testRoundTripCaseNameConstant,
			document: map[string]any{"name": "build-47", "ready": true},
			expected: map[string]any{"name": "build-47", "ready": true},
		},
		{
			name: testNestedDocumentCaseNameConstant,
			document: map[string]any{
				"artifacts": []any{
					map[string]any{"path": "disk.qcow2", "size": float64(4096)},
				},
			},
			expected: map[string]any{
				"artifacts": []any{
					map[string]any{"path": "disk.qcow2", "size": float64(4096)},
				},
			},
		},
		{
			name:     testScalarDocumentCaseNameConstant,
			document: []any{"one", float64(2), nil},
			expected: []any{"one", float64(2), nil},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			documentPath := filepath.Join(testInstance.TempDir(), testDocumentFileNameConstant)

			require.NoError(testInstance, jsonfile.Write(documentPath, testCase.document))

			loadedDocument, loadError := jsonfile.Load(documentPath)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expected, loadedDocument)
		})
	}
}

func TestWriteAppliesDocumentPermissions(testInstance *testing.T) {
	documentPath := filepath.Join(testInstance.TempDir(), testDocumentFileNameConstant)

	require.NoError(testInstance, jsonfile.Write(documentPath, map[string]any{"name": "build"}))

	documentInfo, statError := os.Stat(documentPath)
	require.NoError(testInstance, statError)
	require.Equal(testInstance, os.FileMode(0o644), documentInfo.Mode().Perm())
}

func TestWriteFailureLeavesOriginalDocument(testInstance *testing.T) {
	documentDirectory := testInstance.TempDir()
	documentPath := filepath.Join(documentDirectory, testDocumentFileNameConstant)
	require.NoError(testInstance, os.WriteFile(documentPath, []byte(testOriginalDocumentContentsValue), 0o644))

	unserializableDocument := map[string]any{"callback": func() {}}
	require.Error(testInstance, jsonfile.Write(documentPath, unserializableDocument))

	documentContents, readError := os.ReadFile(documentPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testOriginalDocumentContentsValue, string(documentContents))
}

func TestWriteDoesNotLeakTemporaryFiles(testInstance *testing.T) {
	documentDirectory := testInstance.TempDir()
	documentPath := filepath.Join(documentDirectory, testDocumentFileNameConstant)

	require.NoError(testInstance, jsonfile.Write(documentPath, map[string]any{"name": "build"}))
	require.Error(testInstance, jsonfile.Write(documentPath, map[string]any{"callback": func() {}}))

	directoryEntries, readDirectoryError := os.ReadDir(documentDirectory)
	require.NoError(testInstance, readDirectoryError)
	require.Len(testInstance, directoryEntries, 1)
	require.Equal(testInstance, testDocumentFileNameConstant, directoryEntries[0].Name())
}

func TestWriteRejectsMissingDirectory(testInstance *testing.T) {
	documentPath := filepath.Join(testInstance.TempDir(), testMissingDirectoryNameConstant, testDocumentFileNameConstant)

	require.Error(testInstance, jsonfile.Write(documentPath, map[string]any{"name": "build"}))
}

func TestLoadFailures(testInstance *testing.T) {
	testInstance.Run("missing_file", func(testInstance *testing.T) {
		_, loadError := jsonfile.Load(filepath.Join(testInstance.TempDir(), testDocumentFileNameConstant))
		require.Error(testInstance, loadError)
	})

	testInstance.Run("malformed_document", func(testInstance *testing.T) {
		documentPath := filepath.Join(testInstance.TempDir(), testDocumentFileNameConstant)
		require.NoError(testInstance, os.WriteFile(documentPath, []byte(testMalformedDocumentContentsValue), 0o644))

		_, loadError := jsonfile.Load(documentPath)
		require.Error(testInstance, loadError)
	})
}
