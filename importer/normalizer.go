package importer

import (
	"strings"

	"hrimport/employee"
)

// FieldValues holds the raw cell of every canonical field present in a source
// row. A key is present only when its column exists in the source.
type FieldValues map[string]string

// ExtractFields reads the mapped columns of row into field values.
func ExtractFields(row PositionalRow, columns ColumnMap) FieldValues {
	fields := make(FieldValues, len(columns))
	for column, keys := range columns {
		value := row.Cell(column)
		for _, key := range keys {
			fields[key] = value
		}
	}
	return fields
}

// Verdict tells why a normalized row was or was not accepted.
type Verdict int

const (
	Accepted Verdict = iota
	ExcludedByStatus
	MissingNaturalKey
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case ExcludedByStatus:
		return "excluded-by-status"
	case MissingNaturalKey:
		return "missing-natural-key"
	default:
		return "unknown"
	}
}

type NormalizerOptions struct {
	// StatusFilter drops rows whose status column is present and not ActiveStatus.
	StatusFilter bool
	ActiveStatus string
	// LicenseClasses extends DefaultLicenseClasses.
	LicenseClasses map[string]string
}

type Normalizer struct {
	statusFilter bool
	activeStatus string
	licenses     map[string]string
}

func NewNormalizer(options NormalizerOptions) *Normalizer {
	active := strings.ToUpper(strings.TrimSpace(options.ActiveStatus))
	if active == "" {
		active = DefaultStatusToken
	}

	licenses := make(map[string]string, len(DefaultLicenseClasses)+len(options.LicenseClasses))
	for code, class := range DefaultLicenseClasses {
		licenses[code] = class
	}
	for code, class := range options.LicenseClasses {
		licenses[strings.ToUpper(strings.TrimSpace(code))] = class
	}

	return &Normalizer{
		statusFilter: options.StatusFilter,
		activeStatus: active,
		licenses:     licenses,
	}
}

// Normalize converts one row's field values into the canonical record. Field
// conversion never fails; only the verdict decides whether the row is kept.
func (n *Normalizer) Normalize(fields FieldValues) (employee.Record, Verdict) {
	status, hasStatus := fields[FieldStatus]
	status = strings.ToUpper(strings.TrimSpace(status))
	if n.statusFilter && hasStatus && status != n.activeStatus {
		return employee.Record{}, ExcludedByStatus
	}

	text := func(key string) string {
		return ScrubSentinel(fields[key])
	}

	surname, given := SplitName(fields[FieldFullName])
	record := employee.Record{
		NationalID: NormalizeNationalID(fields[FieldNationalID]),
		Surname:    surname,
		GivenName:  given,

		Phone:             text(FieldPhone),
		Email:             strings.ToLower(text(FieldEmail)),
		Address:           text(FieldAddress),
		EmergencyPhone:    text(FieldEmergencyPhone),
		EmergencyContact:  text(FieldEmergencyContact),
		EmergencyRelation: text(FieldEmergencyRelation),

		HireDate:     ConvertDate(text(FieldHireDate)),
		Position:     text(FieldPosition),
		ContractType: text(FieldContractType),
		Department:   text(FieldDepartment),
		Status:       status,

		BirthDate:            ConvertDate(text(FieldBirthDate)),
		EducationLevel:       text(FieldEducationLevel),
		Degree:               text(FieldDegree),
		OtherSkills:          text(FieldOtherSkills),
		BloodType:            strings.ToUpper(text(FieldBloodType)),
		Allergies:            ToYesNo(fields[FieldAllergies]),
		Medication:           text(FieldMedication),
		HasLicense:           ToYesNo(fields[FieldHasLicense]),
		LicenseTypes:         MapLicenseTypes(text(FieldLicenseType), n.licenses),
		HealthCoverage:       ToYesNo(fields[FieldHealthCoverage]),
		HealthCoverageDetail: text(FieldHealthCoverageDetail),
		HasChildren:          ToYesNo(fields[FieldHasChildren]),
		ChildrenNames:        text(FieldChildrenNames),
	}

	if record.NationalID == "" {
		return employee.Record{}, MissingNaturalKey
	}
	return record, Accepted
}
