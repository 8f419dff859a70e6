package timestamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osforge/osforge/internal/timestamp"
)

const (
	testFixedInstantCaseNameConstant     = "fixed_utc_instant"
	testSubsecondInstantCaseNameConstant = "subsecond_precision_dropped"
	testFixedInstantRenderingConstant    = "2021-01-01T00:00:00Z"
	testSubsecondRenderingConstant       = "2021-06-15T10:30:45Z"
	testNonUTCZoneNameConstant           = "EST"
)

func TestFormat(testInstance *testing.T) {
	testCases := []struct {
		name              string
		moment            time.Time
		expectedRendering string
	}{
		{
			name:              testFixedInstantCaseNameConstant,
			moment:            time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			expectedRendering: testFixedInstantRenderingConstant,
		},
		{
			name:              testSubsecondInstantCaseNameConstant,
			moment:            time.Date(2021, time.June, 15, 10, 30, 45, 987654321, time.UTC),
			expectedRendering: testSubsecondRenderingConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			renderedTimestamp, formatError := timestamp.Format(testCase.moment)
			require.NoError(testInstance, formatError)
			require.Equal(testInstance, testCase.expectedRendering, renderedTimestamp)
		})
	}
}

func TestFormatRejectsNonUTCTimestamp(testInstance *testing.T) {
	nonUTCZone := time.FixedZone(testNonUTCZoneNameConstant, -5*60*60)
	nonUTCMoment := time.Date(2021, time.January, 1, 0, 0, 0, 0, nonUTCZone)

	_, formatError := timestamp.Format(nonUTCMoment)
	require.Error(testInstance, formatError)

	zoneError := timestamp.NonUTCTimestampError{}
	require.ErrorAs(testInstance, formatError, &zoneError)
	require.Equal(testInstance, nonUTCMoment, zoneError.Timestamp)
}

func TestNowRendersCurrentUTCTime(testInstance *testing.T) {
	renderedNow := timestamp.Now()

	parsedNow, parseError := time.Parse(timestamp.Layout, renderedNow)
	require.NoError(testInstance, parseError)
	require.WithinDuration(testInstance, time.Now().UTC(), parsedNow, time.Minute)
}
