package timeutil

import "time"

// ISODate is the canonical day layout for stored dates.
const ISODate = "2006-01-02"

// SerialEpoch is day zero of the spreadsheet serial date system.
var SerialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// serialLeapCorrection compensates the phantom 1900-02-29 of spreadsheet serials
// together with the one-based day count of the exporting tool.
const serialLeapCorrection = 2

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

// FromSerial converts a whole spreadsheet serial day count into a calendar day in UTC.
func FromSerial(days int) time.Time {
	return SerialEpoch.AddDate(0, 0, days-serialLeapCorrection)
}

func FormatDay(value time.Time) string {
	return value.Format(ISODate)
}
