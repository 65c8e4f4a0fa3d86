package importer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hrimport/employee"
	"hrimport/internal/timeutil"
)

const (
	minSerialDate = 1000
	// maxSerialDate is 9999-12-31, the last day spreadsheets can represent.
	maxSerialDate = 2958465
)

var (
	dayMonthYear = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	serialNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

var dateLayouts = []string{
	timeutil.ISODate,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"02-01-2006",
	"02.01.2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ConvertDate normalizes a raw date cell to YYYY-MM-DD. It accepts spreadsheet
// serial numbers, DD/MM/YYYY text and a handful of common layouts; anything
// else is returned unchanged.
func ConvertDate(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if serialNumber.MatchString(value) {
		if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > minSerialDate && serial <= maxSerialDate {
			return timeutil.FormatDay(timeutil.FromSerial(int(math.Floor(serial))))
		}
	}

	if parts := dayMonthYear.FindStringSubmatch(value); parts != nil {
		day, _ := strconv.Atoi(parts[1])
		month, _ := strconv.Atoi(parts[2])
		return fmt.Sprintf("%s-%02d-%02d", parts[3], month, day)
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return timeutil.FormatDay(timeutil.StartOfDay(parsed))
		}
	}

	return raw
}

// ToYesNo reduces a free-text answer to yes/no: anything starting with "s"
// (sí, si, si cumple) is yes.
func ToYesNo(raw string) employee.YesNo {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "s") {
		return employee.Yes
	}
	return employee.No
}

var sentinelValues = map[string]struct{}{
	"-":        {},
	"–":        {},
	"—":        {},
	"--":       {},
	"n/a":      {},
	"no tiene": {},
	"no posee": {},
	"ninguno":  {},
	"ninguna":  {},
}

// ScrubSentinel replaces placeholder answers meaning "no data" with "".
func ScrubSentinel(raw string) string {
	value := strings.TrimSpace(raw)
	if _, ok := sentinelValues[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// SplitName splits "Surname, Given names" on the first comma. Without a comma
// the whole value is the given name and the surname stays empty.
func SplitName(full string) (surname, given string) {
	value := strings.TrimSpace(full)
	before, after, found := strings.Cut(value, ",")
	if !found {
		return "", value
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// DefaultLicenseClasses maps raw driver's license codes to canonical classes.
var DefaultLicenseClasses = map[string]string{
	"A1": "clase-a",
	"A2": "clase-a",
	"A3": "clase-a",
	"B1": "clase-b",
	"B2": "clase-b",
	"C":  "clase-c",
	"D1": "clase-d",
	"D2": "clase-d",
	"D3": "clase-d",
	"E1": "clase-e",
	"E2": "clase-e",
	"E3": "clase-e",
	"G":  "clase-g",
}

// MapLicenseTypes splits a license field into codes and maps each through
// classes. Unknown codes pass through unchanged, repeated classes collapse,
// and an empty field yields an empty list.
func MapLicenseTypes(raw string, classes map[string]string) []string {
	codes := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == ' ' || r == '\t'
	})

	mapped := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		class, ok := classes[strings.ToUpper(code)]
		if !ok {
			class = code
		}
		if _, dup := seen[class]; dup {
			continue
		}
		seen[class] = struct{}{}
		mapped = append(mapped, class)
	}
	return mapped
}

// NormalizeNationalID strips the separators people type into document numbers.
func NormalizeNationalID(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '-', ' ', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}
