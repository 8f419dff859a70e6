package ostree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osforge/osforge/internal/ostree"
)

const (
	testWhitespaceRepositoryPathConstant = "   "
	testMarkerMissingCaseNameConstant    = "marker_missing"
	testMarkerPresentCaseNameConstant    = "marker_present"
)

func TestNewRepositoryValidation(testInstance *testing.T) {
	_, emptyPathError := ostree.NewRepository("")
	require.ErrorIs(testInstance, emptyPathError, ostree.ErrRepositoryPathRequired)

	_, whitespacePathError := ostree.NewRepository(testWhitespaceRepositoryPathConstant)
	require.ErrorIs(testInstance, whitespacePathError, ostree.ErrRepositoryPathRequired)

	repository, validPathError := ostree.NewRepository("tmp/repo")
	require.NoError(testInstance, validPathError)
	require.Equal(testInstance, "tmp/repo", repository.Path)
}

func TestPartialMarkerPath(testInstance *testing.T) {
	repository, repositoryError := ostree.NewRepository("tmp/repo")
	require.NoError(testInstance, repositoryError)

	expectedMarkerPath := filepath.Join("tmp/repo", "state", testCommitReferenceConstant+".commitpartial")
	require.Equal(testInstance, expectedMarkerPath, repository.PartialMarkerPath(testCommitReferenceConstant))
}

func TestCommitMarkedPartial(testInstance *testing.T) {
	testCases := []struct {
		name           string
		createMarker   bool
		expectedResult bool
	}{
		{name: testMarkerMissingCaseNameConstant, createMarker: false, expectedResult: false},
		{name: testMarkerPresentCaseNameConstant, createMarker: true, expectedResult: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repository, repositoryError := ostree.NewRepository(testInstance.TempDir())
			require.NoError(testInstance, repositoryError)

			if testCase.createMarker {
				markerPath := repository.PartialMarkerPath(testCommitReferenceConstant)
				require.NoError(testInstance, os.MkdirAll(filepath.Dir(markerPath), 0o755))
				require.NoError(testInstance, os.WriteFile(markerPath, []byte{}, 0o644))
			}

			markedPartial, markerError := repository.CommitMarkedPartial(testCommitReferenceConstant)
			require.NoError(testInstance, markerError)
			require.Equal(testInstance, testCase.expectedResult, markedPartial)
		})
	}
}

func TestCommitMarkedPartialRequiresCommitReference(testInstance *testing.T) {
	repository, repositoryError := ostree.NewRepository(testInstance.TempDir())
	require.NoError(testInstance, repositoryError)

	_, markerError := repository.CommitMarkedPartial("")
	require.ErrorIs(testInstance, markerError, ostree.ErrCommitReferenceRequired)
}
