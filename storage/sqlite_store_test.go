package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"hrimport/employee"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "hrimport_test.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleEmployee(nationalID, surname string) employee.Record {
	return employee.Record{
		NationalID:     nationalID,
		Surname:        surname,
		GivenName:      "Juan",
		HireDate:       "2020-03-15",
		Status:         "ACTIVO",
		Allergies:      employee.No,
		HasLicense:     employee.Yes,
		LicenseTypes:   []string{"clase-b", "clase-a"},
		HealthCoverage: employee.Yes,
		SourceFile:     "plantilla.xlsx",
		SourceRow:      2,
	}
}

func TestSQLiteStore_InsertAssignsIDsAndRoundTrips(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertEmployees(ctx, []employee.Record{
		sampleEmployee("30111222", "Pérez"),
		sampleEmployee("27999888", "Gómez"),
	})
	if err != nil {
		t.Fatalf("insert employees: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted rows, got %d", inserted)
	}

	listed, err := store.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(listed))
	}
	if listed[0].Surname != "Gómez" || listed[1].Surname != "Pérez" {
		t.Fatalf("expected rows ordered by surname, got %q, %q", listed[0].Surname, listed[1].Surname)
	}
	for _, record := range listed {
		if record.ID == "" {
			t.Fatalf("expected store-assigned id for %s", record.NationalID)
		}
	}

	got, err := store.GetEmployeeByNationalID(ctx, "30111222")
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if got.HasLicense != employee.Yes || got.Allergies != employee.No {
		t.Fatalf("unexpected flags: license=%q allergies=%q", got.HasLicense, got.Allergies)
	}
	if len(got.LicenseTypes) != 2 || got.LicenseTypes[0] != "clase-b" {
		t.Fatalf("unexpected license types: %v", got.LicenseTypes)
	}
	if got.SourceRow != 2 || got.SourceFile != "plantilla.xlsx" {
		t.Fatalf("unexpected provenance: %s row %d", got.SourceFile, got.SourceRow)
	}
}

func TestSQLiteStore_ListNationalIDs(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertEmployees(ctx, []employee.Record{sampleEmployee("123", "A"), sampleEmployee("456", "B")}); err != nil {
		t.Fatalf("insert employees: %v", err)
	}

	ids, err := store.ListNationalIDs(ctx)
	if err != nil {
		t.Fatalf("list national ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if _, ok := ids["123"]; !ok {
		t.Fatalf("expected id 123 in %v", ids)
	}
}

func TestSQLiteStore_InsertIsAllOrNothing(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertEmployees(ctx, []employee.Record{sampleEmployee("123", "A")}); err != nil {
		t.Fatalf("insert employees: %v", err)
	}

	inserted, err := store.InsertEmployees(ctx, []employee.Record{
		sampleEmployee("456", "B"),
		sampleEmployee("123", "A again"),
	})
	if err == nil {
		t.Fatalf("expected unique violation error")
	}
	if inserted != 0 {
		t.Fatalf("expected 0 inserted on failure, got %d", inserted)
	}

	if _, err := store.GetEmployeeByNationalID(ctx, "456"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected rolled back row to be absent, got err=%v", err)
	}
}

func TestSQLiteStore_EmptyLicenseTypesRoundTripAsEmptyList(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	record := sampleEmployee("999", "Sin Carnet")
	record.LicenseTypes = nil
	record.HasLicense = ""
	if _, err := store.InsertEmployees(ctx, []employee.Record{record}); err != nil {
		t.Fatalf("insert employees: %v", err)
	}

	got, err := store.GetEmployeeByNationalID(ctx, "999")
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if got.LicenseTypes == nil || len(got.LicenseTypes) != 0 {
		t.Fatalf("expected empty license list, got %#v", got.LicenseTypes)
	}
	if got.HasLicense != employee.No {
		t.Fatalf("expected missing flag to default to no, got %q", got.HasLicense)
	}
}

func TestSQLiteStore_DeleteEmployee(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertEmployees(ctx, []employee.Record{sampleEmployee("123", "A")}); err != nil {
		t.Fatalf("insert employees: %v", err)
	}
	stored, err := store.GetEmployeeByNationalID(ctx, "123")
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}

	deleted, err := store.DeleteEmployee(ctx, stored.ID)
	if err != nil {
		t.Fatalf("delete employee: %v", err)
	}
	if !deleted {
		t.Fatalf("expected employee to be deleted")
	}

	deleted, err = store.DeleteEmployee(ctx, stored.ID)
	if err != nil {
		t.Fatalf("delete employee again: %v", err)
	}
	if deleted {
		t.Fatalf("expected second delete to report false")
	}
}

func TestSQLiteStore_DeleteAllEmployees(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.InsertEmployees(ctx, []employee.Record{sampleEmployee("1", "A"), sampleEmployee("2", "B")}); err != nil {
		t.Fatalf("insert employees: %v", err)
	}

	deleted, err := store.DeleteAllEmployees(ctx)
	if err != nil {
		t.Fatalf("delete all employees: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted rows, got %d", deleted)
	}

	listed, err := store.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty store, got %d rows", len(listed))
	}
}

func TestSQLiteStore_ReopenKeepsSchema(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	first, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if _, err := first.InsertEmployees(context.Background(), []employee.Record{sampleEmployee("1", "A")}); err != nil {
		t.Fatalf("insert employees: %v", err)
	}
	_ = first.Close()

	second, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer second.Close()

	ids, err := second.ListNationalIDs(context.Background())
	if err != nil {
		t.Fatalf("list national ids: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 id after reopen, got %d", len(ids))
	}
}
