package web

import (
	"hrimport/employee"
	"hrimport/importer"
)

// HeaderView is one source column with the value of the first data row.
type HeaderView struct {
	Column int    `json:"column"`
	Label  string `json:"label"`
	Sample string `json:"sample"`
}

// FieldView is one catalog field with its current binding. Column is
// importer.Unmapped when the field is not bound.
type FieldView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Column      int    `json:"column"`
	Preview     string `json:"preview"`
}

type PreviewView struct {
	File     string       `json:"file"`
	Strategy string       `json:"strategy"`
	RowCount int          `json:"rowCount"`
	Headers  []HeaderView `json:"headers"`
	Fields   []FieldView  `json:"fields"`
	Ready    bool         `json:"ready"`
	Missing  []string     `json:"missing"`
}

// BuildPreview renders the mapper state for the first data row.
func BuildPreview(file string, strategy importer.Strategy, sheet *importer.Sheet, mapper *importer.ColumnMapper) PreviewView {
	headers := make([]HeaderView, 0, len(sheet.Headers))
	for column, label := range sheet.Headers {
		headers = append(headers, HeaderView{
			Column: column,
			Label:  label,
			Sample: mapper.PreviewValue(column, 0),
		})
	}

	fields := make([]FieldView, 0, len(mapper.Catalog()))
	for _, field := range mapper.Catalog() {
		view := FieldView{
			Key:         field.Key,
			Label:       field.Label,
			Required:    field.Required,
			Description: field.Description,
			Column:      importer.Unmapped,
			Preview:     importer.PreviewNotApplicable,
		}
		if column, ok := mapper.Binding(field.Key); ok {
			view.Column = column
			view.Preview = mapper.PreviewValue(column, 0)
		}
		fields = append(fields, view)
	}

	missing := make([]string, 0)
	for _, field := range mapper.Missing() {
		missing = append(missing, field.Key)
	}

	return PreviewView{
		File:     file,
		Strategy: string(strategy),
		RowCount: len(sheet.Rows),
		Headers:  headers,
		Fields:   fields,
		Ready:    mapper.IsReady(),
		Missing:  missing,
	}
}

// EmployeeView is the JSON form of a stored employee.
type EmployeeView struct {
	ID                   string   `json:"id"`
	NationalID           string   `json:"nationalId"`
	Surname              string   `json:"surname"`
	GivenName            string   `json:"givenName"`
	FullName             string   `json:"fullName"`
	Status               string   `json:"status,omitempty"`
	HireDate             string   `json:"hireDate,omitempty"`
	Position             string   `json:"position,omitempty"`
	ContractType         string   `json:"contractType,omitempty"`
	Department           string   `json:"department,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	Email                string   `json:"email,omitempty"`
	Address              string   `json:"address,omitempty"`
	EmergencyPhone       string   `json:"emergencyPhone,omitempty"`
	EmergencyContact     string   `json:"emergencyContact,omitempty"`
	EmergencyRelation    string   `json:"emergencyRelation,omitempty"`
	BirthDate            string   `json:"birthDate,omitempty"`
	EducationLevel       string   `json:"educationLevel,omitempty"`
	Degree               string   `json:"degree,omitempty"`
	OtherSkills          string   `json:"otherSkills,omitempty"`
	BloodType            string   `json:"bloodType,omitempty"`
	Allergies            string   `json:"allergies"`
	Medication           string   `json:"medication,omitempty"`
	HasLicense           string   `json:"hasLicense"`
	LicenseTypes         []string `json:"licenseTypes"`
	HealthCoverage       string   `json:"healthCoverage"`
	HealthCoverageDetail string   `json:"healthCoverageDetail,omitempty"`
	HasChildren          string   `json:"hasChildren"`
	ChildrenNames        string   `json:"childrenNames,omitempty"`
	SourceFile           string   `json:"sourceFile,omitempty"`
	SourceRow            int      `json:"sourceRow,omitempty"`
}

func BuildEmployeeViews(records []employee.Record) []EmployeeView {
	out := make([]EmployeeView, 0, len(records))
	for _, record := range records {
		licenses := record.LicenseTypes
		if licenses == nil {
			licenses = []string{}
		}
		out = append(out, EmployeeView{
			ID:                   record.ID,
			NationalID:           record.NationalID,
			Surname:              record.Surname,
			GivenName:            record.GivenName,
			FullName:             record.FullName(),
			Status:               record.Status,
			HireDate:             record.HireDate,
			Position:             record.Position,
			ContractType:         record.ContractType,
			Department:           record.Department,
			Phone:                record.Phone,
			Email:                record.Email,
			Address:              record.Address,
			EmergencyPhone:       record.EmergencyPhone,
			EmergencyContact:     record.EmergencyContact,
			EmergencyRelation:    record.EmergencyRelation,
			BirthDate:            record.BirthDate,
			EducationLevel:       record.EducationLevel,
			Degree:               record.Degree,
			OtherSkills:          record.OtherSkills,
			BloodType:            record.BloodType,
			Allergies:            string(record.Allergies),
			Medication:           record.Medication,
			HasLicense:           string(record.HasLicense),
			LicenseTypes:         licenses,
			HealthCoverage:       string(record.HealthCoverage),
			HealthCoverageDetail: record.HealthCoverageDetail,
			HasChildren:          string(record.HasChildren),
			ChildrenNames:        record.ChildrenNames,
			SourceFile:           record.SourceFile,
			SourceRow:            record.SourceRow,
		})
	}
	return out
}
