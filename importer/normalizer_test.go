package importer

import (
	"reflect"
	"testing"

	"hrimport/employee"
)

func TestNormalizer_ScenarioRow(t *testing.T) {
	t.Parallel()

	sheet := scenarioSheet()
	columns, err := ResolveHeaderColumns(EmployeeCatalog(), sheet)
	if err != nil {
		t.Fatalf("resolve columns: %v", err)
	}

	normalizer := NewNormalizer(NormalizerOptions{StatusFilter: true})

	record, verdict := normalizer.Normalize(ExtractFields(sheet.Rows[0], columns))
	if verdict != Accepted {
		t.Fatalf("expected accepted, got %s", verdict)
	}
	if record.Surname != "Pérez" || record.GivenName != "Juan" {
		t.Fatalf("unexpected name split: %q / %q", record.Surname, record.GivenName)
	}
	if record.HireDate != "2020-03-15" {
		t.Fatalf("unexpected hire date %q", record.HireDate)
	}
	if record.NationalID != "30111222" {
		t.Fatalf("unexpected national id %q", record.NationalID)
	}
	if record.Status != "ACTIVO" {
		t.Fatalf("unexpected status %q", record.Status)
	}

	if _, verdict := normalizer.Normalize(ExtractFields(sheet.Rows[1], columns)); verdict != ExcludedByStatus {
		t.Fatalf("expected inactive row to be excluded, got %s", verdict)
	}
}

func TestNormalizer_StatusFilterNeedsStatusColumn(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(NormalizerOptions{StatusFilter: true})
	_, verdict := normalizer.Normalize(FieldValues{
		FieldNationalID: "30111222",
		FieldFullName:   "Pérez, Juan",
	})
	if verdict != Accepted {
		t.Fatalf("row without status column must be accepted, got %s", verdict)
	}

	_, verdict = normalizer.Normalize(FieldValues{
		FieldNationalID: "30111222",
		FieldStatus:     "",
	})
	if verdict != ExcludedByStatus {
		t.Fatalf("blank status in a present column must be excluded, got %s", verdict)
	}
}

func TestNormalizer_StatusFilterDisabledAndCustomToken(t *testing.T) {
	t.Parallel()

	fields := FieldValues{FieldNationalID: "30111222", FieldStatus: "baja"}
	if _, verdict := NewNormalizer(NormalizerOptions{}).Normalize(fields); verdict != Accepted {
		t.Fatalf("disabled filter must accept, got %s", verdict)
	}

	custom := NewNormalizer(NormalizerOptions{StatusFilter: true, ActiveStatus: "vigente"})
	if _, verdict := custom.Normalize(FieldValues{FieldNationalID: "1", FieldStatus: "Vigente"}); verdict != Accepted {
		t.Fatalf("custom active status must accept, got %s", verdict)
	}
	if _, verdict := custom.Normalize(FieldValues{FieldNationalID: "1", FieldStatus: "ACTIVO"}); verdict != ExcludedByStatus {
		t.Fatalf("default token must not apply with a custom one, got %s", verdict)
	}
}

func TestNormalizer_MissingNationalID(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(NormalizerOptions{StatusFilter: true})
	_, verdict := normalizer.Normalize(FieldValues{
		FieldStatus:     "ACTIVO",
		FieldFullName:   "Pérez, Juan",
		FieldNationalID: " . ",
	})
	if verdict != MissingNaturalKey {
		t.Fatalf("expected missing natural key, got %s", verdict)
	}
}

func TestNormalizer_ConvertsEveryField(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(NormalizerOptions{
		LicenseClasses: map[string]string{"z9": "profesional"},
	})
	record, verdict := normalizer.Normalize(FieldValues{
		FieldNationalID:           "30.111.222",
		FieldFullName:             "Pérez, Juan Carlos",
		FieldBirthDate:            "29587",
		FieldEmail:                " Juan.Perez@Example.COM ",
		FieldPhone:                "-",
		FieldBloodType:            "0+ rh",
		FieldAllergies:            "Sí, al polen",
		FieldMedication:           "No tiene",
		FieldHasLicense:           "si",
		FieldLicenseType:          "B1, Z9, X",
		FieldHealthCoverage:       "NO",
		FieldHealthCoverageDetail: "n/a",
		FieldHasChildren:          "",
	})
	if verdict != Accepted {
		t.Fatalf("expected accepted, got %s", verdict)
	}

	want := employee.Record{
		NationalID:     "30111222",
		Surname:        "Pérez",
		GivenName:      "Juan Carlos",
		BirthDate:      "1980-12-30",
		Email:          "juan.perez@example.com",
		BloodType:      "0+ RH",
		Allergies:      employee.Yes,
		HasLicense:     employee.Yes,
		LicenseTypes:   []string{"clase-b", "profesional", "X"},
		HealthCoverage: employee.No,
		HasChildren:    employee.No,
	}
	if !reflect.DeepEqual(record, want) {
		t.Fatalf("unexpected record:\nwant %+v\ngot  %+v", want, record)
	}
}

func TestExtractFields_ColumnFeedsSeveralFields(t *testing.T) {
	t.Parallel()

	row := PositionalRow{" 555-1234 ", "x"}
	fields := ExtractFields(row, ColumnMap{0: {FieldPhone, FieldEmergencyPhone}, 7: {FieldEmail}})

	if fields[FieldPhone] != "555-1234" || fields[FieldEmergencyPhone] != "555-1234" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if value, ok := fields[FieldEmail]; !ok || value != "" {
		t.Fatalf("out of range column must yield a present empty value, got %q (%v)", value, ok)
	}
}

func TestVerdictString(t *testing.T) {
	t.Parallel()

	for verdict, want := range map[Verdict]string{
		Accepted:          "accepted",
		ExcludedByStatus:  "excluded-by-status",
		MissingNaturalKey: "missing-natural-key",
		Verdict(42):       "unknown",
	} {
		if got := verdict.String(); got != want {
			t.Fatalf("want %s, got %s", want, got)
		}
	}
}
