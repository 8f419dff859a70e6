// Package timestamp renders build timestamps in the fixed RFC 3339 layout
// used by osforge metadata documents.
package timestamp

import (
	"fmt"
	"time"
)

const (
	// Layout is the second-precision UTC layout emitted by Format.
	Layout = "2006-01-02T15:04:05Z"

	utcZoneNameConstant             = "UTC"
	nonUTCTimestampTemplateConstant = "timestamp %s must carry the UTC zone"
)

// NonUTCTimestampError reports a timestamp carrying a zone other than UTC.
// Callers must convert explicitly; this layer never converts silently.
type NonUTCTimestampError struct {
	Timestamp time.Time
}

// Error describes the contract violation.
func (zoneError NonUTCTimestampError) Error() string {
	return fmt.Sprintf(nonUTCTimestampTemplateConstant, zoneError.Timestamp.String())
}

// Format renders the supplied instant using the fixed layout. The instant
// must already be expressed in UTC.
func Format(moment time.Time) (string, error) {
	zoneName, zoneOffsetSeconds := moment.Zone()
	if zoneName != utcZoneNameConstant || zoneOffsetSeconds != 0 {
		return "", NonUTCTimestampError{Timestamp: moment}
	}
	return moment.Format(Layout), nil
}

// Now renders the current UTC time using the fixed layout.
func Now() string {
	formattedNow, _ := Format(time.Now().UTC())
	return formattedNow
}
