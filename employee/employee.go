package employee

import "strings"

// YesNo is the canonical two-value answer stored for flag-like fields.
type YesNo string

const (
	Yes YesNo = "yes"
	No  YesNo = "no"
)

// Bool reports whether the answer is affirmative.
func (v YesNo) Bool() bool {
	return v == Yes
}

// Record is the normalized employee record used across importers, storage and outputs.
type Record struct {
	ID string

	NationalID string
	Surname    string
	GivenName  string

	Phone             string
	Email             string
	Address           string
	EmergencyPhone    string
	EmergencyContact  string
	EmergencyRelation string

	HireDate     string
	Position     string
	ContractType string
	Department   string
	Status       string

	BirthDate            string
	EducationLevel       string
	Degree               string
	OtherSkills          string
	BloodType            string
	Allergies            YesNo
	Medication           string
	HasLicense           YesNo
	LicenseTypes         []string
	HealthCoverage       YesNo
	HealthCoverageDetail string
	HasChildren          YesNo
	ChildrenNames        string

	SourceFile string
	SourceRow  int
}

// FullName renders the record as "Surname, GivenName", dropping empty parts.
func (r Record) FullName() string {
	surname := strings.TrimSpace(r.Surname)
	given := strings.TrimSpace(r.GivenName)
	switch {
	case surname == "":
		return given
	case given == "":
		return surname
	default:
		return surname + ", " + given
	}
}
