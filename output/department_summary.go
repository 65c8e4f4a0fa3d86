package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hrimport/employee"
)

// UnassignedDepartment groups records without a department.
const UnassignedDepartment = "(unassigned)"

// DepartmentSummary is the headcount of one department.
type DepartmentSummary struct {
	Department         string `json:"department"`
	Headcount          int    `json:"headcount"`
	WithLicense        int    `json:"withLicense"`
	WithHealthCoverage int    `json:"withHealthCoverage"`
	WithChildren       int    `json:"withChildren"`
	// EarliestHireDate and LatestHireDate only consider YYYY-MM-DD hire dates.
	EarliestHireDate string `json:"earliestHireDate,omitempty"`
	LatestHireDate   string `json:"latestHireDate,omitempty"`
}

func BuildDepartmentSummaries(records []employee.Record) []DepartmentSummary {
	if len(records) == 0 {
		return []DepartmentSummary{}
	}

	byDepartment := make(map[string]*DepartmentSummary)
	for _, record := range records {
		name := strings.TrimSpace(record.Department)
		if name == "" {
			name = UnassignedDepartment
		}
		summary, ok := byDepartment[name]
		if !ok {
			summary = &DepartmentSummary{Department: name}
			byDepartment[name] = summary
		}
		summarizeRecord(summary, record)
	}

	names := make([]string, 0, len(byDepartment))
	for name := range byDepartment {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]DepartmentSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, *byDepartment[name])
	}
	return summaries
}

func summarizeRecord(summary *DepartmentSummary, record employee.Record) {
	summary.Headcount++
	if record.HasLicense.Bool() {
		summary.WithLicense++
	}
	if record.HealthCoverage.Bool() {
		summary.WithHealthCoverage++
	}
	if record.HasChildren.Bool() {
		summary.WithChildren++
	}

	hired := record.HireDate
	if !isISODay(hired) {
		return
	}
	if summary.EarliestHireDate == "" || hired < summary.EarliestHireDate {
		summary.EarliestHireDate = hired
	}
	if hired > summary.LatestHireDate {
		summary.LatestHireDate = hired
	}
}

// isISODay reports whether value looks like YYYY-MM-DD, so that string
// comparison orders it chronologically.
func isISODay(value string) bool {
	if len(value) != 10 || value[4] != '-' || value[7] != '-' {
		return false
	}
	for i, r := range value {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var departmentSummaryHeaders = []string{"Department", "Headcount", "WithLicense", "WithHealthCoverage", "WithChildren", "EarliestHireDate", "LatestHireDate"}

func departmentSummaryRows(summaries []DepartmentSummary) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Department,
			strconv.Itoa(summary.Headcount),
			strconv.Itoa(summary.WithLicense),
			strconv.Itoa(summary.WithHealthCoverage),
			strconv.Itoa(summary.WithChildren),
			summary.EarliestHireDate,
			summary.LatestHireDate,
		})
	}
	return rows
}

func WriteDepartmentSummaries(path, format string, summaries []DepartmentSummary) error {
	rows := departmentSummaryRows(summaries)
	switch normalizeFormat(format) {
	case "csv":
		return writeCSV(path, departmentSummaryHeaders, rows)
	case "excel", "xlsx":
		return writeExcel(path, "Headcount", departmentSummaryHeaders, rows)
	default:
		return fmt.Errorf("unsupported output format for department summaries: %s", format)
	}
}
