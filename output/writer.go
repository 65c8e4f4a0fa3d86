package output

import (
	"fmt"
	"strconv"
	"strings"

	"hrimport/employee"
)

// Writer exports employee records to a file.
type Writer interface {
	Write(path string, records []employee.Record) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var rosterHeaders = []string{
	"NationalID", "Surname", "GivenName", "Status", "HireDate", "Position", "ContractType", "Department",
	"Phone", "Email", "Address", "EmergencyPhone", "EmergencyContact", "EmergencyRelation",
	"BirthDate", "EducationLevel", "Degree", "OtherSkills", "BloodType", "Allergies", "Medication",
	"HasLicense", "LicenseTypes", "HealthCoverage", "HealthCoverageDetail", "HasChildren", "ChildrenNames",
	"SourceFile", "SourceRow",
}

func rosterRow(record employee.Record) []string {
	sourceRow := ""
	if record.SourceRow > 0 {
		sourceRow = strconv.Itoa(record.SourceRow)
	}
	return []string{
		record.NationalID,
		record.Surname,
		record.GivenName,
		record.Status,
		record.HireDate,
		record.Position,
		record.ContractType,
		record.Department,
		record.Phone,
		record.Email,
		record.Address,
		record.EmergencyPhone,
		record.EmergencyContact,
		record.EmergencyRelation,
		record.BirthDate,
		record.EducationLevel,
		record.Degree,
		record.OtherSkills,
		record.BloodType,
		string(record.Allergies),
		record.Medication,
		string(record.HasLicense),
		strings.Join(record.LicenseTypes, ", "),
		string(record.HealthCoverage),
		record.HealthCoverageDetail,
		string(record.HasChildren),
		record.ChildrenNames,
		record.SourceFile,
		sourceRow,
	}
}
