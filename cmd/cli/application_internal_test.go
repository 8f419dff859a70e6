package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testDigestSubcommandNameConstant    = "sha256"
	testImportSubcommandNameConstant    = "import-commit"
	testEmptyContentDigestConstant      = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	testUnknownLogLevelArgumentConstant = "loud"
	testArtifactFileNameConstant        = "artifact.tar"
	testPlanFileNameConstant            = "imports.yaml"
	testPlanContentsConstant            = "imports:\n  - commit: abc123\n    tarball: builds/abc123.tar\n"
)

func executeApplication(testInstance *testing.T, arguments ...string) (string, error) {
	testInstance.Helper()

	application := NewCLIApplication()
	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(outputBuffer)
	application.rootCommand.SetArgs(arguments)

	executionError := application.Execute()
	return outputBuffer.String(), executionError
}

func TestDigestCommandPrintsFileDigest(testInstance *testing.T) {
	artifactPath := filepath.Join(testInstance.TempDir(), testArtifactFileNameConstant)
	require.NoError(testInstance, os.WriteFile(artifactPath, []byte{}, 0o644))

	commandOutput, executionError := executeApplication(testInstance, testDigestSubcommandNameConstant, artifactPath)

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, testEmptyContentDigestConstant+"\n", commandOutput)
}

func TestDigestCommandReportsMissingFile(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), testArtifactFileNameConstant)

	_, executionError := executeApplication(testInstance, testDigestSubcommandNameConstant, missingPath)

	require.Error(testInstance, executionError)
}

func TestRootCommandRejectsUnknownLogLevel(testInstance *testing.T) {
	artifactPath := filepath.Join(testInstance.TempDir(), testArtifactFileNameConstant)
	require.NoError(testInstance, os.WriteFile(artifactPath, []byte{}, 0o644))

	_, executionError := executeApplication(testInstance, "--log-level", testUnknownLogLevelArgumentConstant, testDigestSubcommandNameConstant, artifactPath)

	require.Error(testInstance, executionError)
}

func TestImportCommandSelectionValidation(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{
			name:      "missing_selection",
			arguments: []string{testImportSubcommandNameConstant},
		},
		{
			name:      "missing_tarball",
			arguments: []string{testImportSubcommandNameConstant, "--commit", "abc123"},
		},
		{
			name:      "plan_conflicts_with_commit",
			arguments: []string{testImportSubcommandNameConstant, "--plan", "imports.yaml", "--commit", "abc123"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			_, executionError := executeApplication(testInstance, testCase.arguments...)
			require.Error(testInstance, executionError)
		})
	}
}

func TestResolvePlannedImports(testInstance *testing.T) {
	planPath := filepath.Join(testInstance.TempDir(), testPlanFileNameConstant)
	require.NoError(testInstance, os.WriteFile(planPath, []byte(testPlanContentsConstant), 0o644))

	plannedImports, resolutionError := resolvePlannedImports(&importCommandOptions{planPath: planPath})
	require.NoError(testInstance, resolutionError)
	require.Len(testInstance, plannedImports, 1)
	require.Equal(testInstance, "abc123", plannedImports[0].Commit)

	singleImport, singleResolutionError := resolvePlannedImports(&importCommandOptions{commit: "abc123", tarballPath: "builds/abc123.tar"})
	require.NoError(testInstance, singleResolutionError)
	require.Len(testInstance, singleImport, 1)
	require.Equal(testInstance, "builds/abc123.tar", singleImport[0].Tarball)
}

func TestDefaultImportRepositoryPath(testInstance *testing.T) {
	artifactPath := filepath.Join(testInstance.TempDir(), testArtifactFileNameConstant)
	require.NoError(testInstance, os.WriteFile(artifactPath, []byte{}, 0o644))

	application := NewCLIApplication()
	application.rootCommand.SetOut(&bytes.Buffer{})
	application.rootCommand.SetArgs([]string{testDigestSubcommandNameConstant, artifactPath})
	require.NoError(testInstance, application.Execute())

	require.Equal(testInstance, defaultImportRepositoryPathConstant, application.ImportRepositoryPath())
}
