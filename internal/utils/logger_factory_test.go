package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osforge/osforge/internal/utils"
)

const (
	testConsoleLoggerCaseNameConstant    = "console_logger"
	testStructuredLoggerCaseNameConstant = "structured_logger"
	testUnknownLevelCaseNameConstant     = "unknown_level"
	testUnknownFormatCaseNameConstant    = "unknown_format"
	testUnknownLogLevelValueConstant     = "loud"
	testUnknownLogFormatValueConstant    = "xml"
)

func TestCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name          string
		settings      utils.LoggerSettings
		expectedError bool
	}{
		{
			name:     testConsoleLoggerCaseNameConstant,
			settings: utils.LoggerSettings{Level: utils.LogLevelDebug, Format: utils.LogFormatConsole},
		},
		{
			name:     testStructuredLoggerCaseNameConstant,
			settings: utils.LoggerSettings{Level: utils.LogLevelInfo, Format: utils.LogFormatStructured},
		},
		{
			name:          testUnknownLevelCaseNameConstant,
			settings:      utils.LoggerSettings{Level: utils.LogLevel(testUnknownLogLevelValueConstant), Format: utils.LogFormatConsole},
			expectedError: true,
		},
		{
			name:          testUnknownFormatCaseNameConstant,
			settings:      utils.LoggerSettings{Level: utils.LogLevelInfo, Format: utils.LogFormat(testUnknownLogFormatValueConstant)},
			expectedError: true,
		},
	}

	loggerFactory := utils.NewLoggerFactory()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.settings)
			if testCase.expectedError {
				require.Error(testInstance, creationError)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
