package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"hrimport/employee"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrEmployeeNotFound = errors.New("employee not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	national_id TEXT NOT NULL UNIQUE,
	surname TEXT NOT NULL,
	given_name TEXT NOT NULL,
	phone TEXT NOT NULL,
	email TEXT NOT NULL,
	address TEXT NOT NULL,
	emergency_phone TEXT NOT NULL,
	emergency_contact TEXT NOT NULL,
	emergency_relation TEXT NOT NULL,
	hire_date TEXT NOT NULL,
	position TEXT NOT NULL,
	contract_type TEXT NOT NULL,
	department TEXT NOT NULL,
	status TEXT NOT NULL,
	birth_date TEXT NOT NULL,
	education_level TEXT NOT NULL,
	degree TEXT NOT NULL,
	other_skills TEXT NOT NULL,
	blood_type TEXT NOT NULL,
	allergies TEXT NOT NULL CHECK(allergies IN ('yes', 'no')),
	medication TEXT NOT NULL,
	has_license TEXT NOT NULL CHECK(has_license IN ('yes', 'no')),
	license_types TEXT NOT NULL,
	health_coverage TEXT NOT NULL CHECK(health_coverage IN ('yes', 'no')),
	health_coverage_detail TEXT NOT NULL,
	has_children TEXT NOT NULL CHECK(has_children IN ('yes', 'no')),
	children_names TEXT NOT NULL,
	source_file TEXT NOT NULL,
	source_row INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const employeeColumns = `
	id,
	national_id,
	surname,
	given_name,
	phone,
	email,
	address,
	emergency_phone,
	emergency_contact,
	emergency_relation,
	hire_date,
	position,
	contract_type,
	department,
	status,
	birth_date,
	education_level,
	degree,
	other_skills,
	blood_type,
	allergies,
	medication,
	has_license,
	license_types,
	health_coverage,
	health_coverage_detail,
	has_children,
	children_names,
	source_file,
	source_row`

func employeeArgs(record employee.Record) []any {
	return []any{
		record.ID,
		record.NationalID,
		record.Surname,
		record.GivenName,
		record.Phone,
		record.Email,
		record.Address,
		record.EmergencyPhone,
		record.EmergencyContact,
		record.EmergencyRelation,
		record.HireDate,
		record.Position,
		record.ContractType,
		record.Department,
		record.Status,
		record.BirthDate,
		record.EducationLevel,
		record.Degree,
		record.OtherSkills,
		record.BloodType,
		string(yesNoOrDefault(record.Allergies)),
		record.Medication,
		string(yesNoOrDefault(record.HasLicense)),
		strings.Join(record.LicenseTypes, ","),
		string(yesNoOrDefault(record.HealthCoverage)),
		record.HealthCoverageDetail,
		string(yesNoOrDefault(record.HasChildren)),
		record.ChildrenNames,
		record.SourceFile,
		record.SourceRow,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (employee.Record, error) {
	var (
		record         employee.Record
		allergies      string
		hasLicense     string
		licenseTypes   string
		healthCoverage string
		hasChildren    string
	)
	err := row.Scan(
		&record.ID,
		&record.NationalID,
		&record.Surname,
		&record.GivenName,
		&record.Phone,
		&record.Email,
		&record.Address,
		&record.EmergencyPhone,
		&record.EmergencyContact,
		&record.EmergencyRelation,
		&record.HireDate,
		&record.Position,
		&record.ContractType,
		&record.Department,
		&record.Status,
		&record.BirthDate,
		&record.EducationLevel,
		&record.Degree,
		&record.OtherSkills,
		&record.BloodType,
		&allergies,
		&record.Medication,
		&hasLicense,
		&licenseTypes,
		&healthCoverage,
		&record.HealthCoverageDetail,
		&hasChildren,
		&record.ChildrenNames,
		&record.SourceFile,
		&record.SourceRow,
	)
	if err != nil {
		return employee.Record{}, err
	}

	record.Allergies = employee.YesNo(allergies)
	record.HasLicense = employee.YesNo(hasLicense)
	record.HealthCoverage = employee.YesNo(healthCoverage)
	record.HasChildren = employee.YesNo(hasChildren)
	record.LicenseTypes = []string{}
	if licenseTypes != "" {
		record.LicenseTypes = strings.Split(licenseTypes, ",")
	}
	return record, nil
}

func yesNoOrDefault(value employee.YesNo) employee.YesNo {
	if value == employee.Yes {
		return employee.Yes
	}
	return employee.No
}

// InsertEmployees inserts all records in one transaction and assigns each a new
// ID. Any failure, including a national ID already stored, rolls back the batch.
func (s *SQLiteStore) InsertEmployees(ctx context.Context, records []employee.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	insertStmt := `INSERT INTO employees (` + employeeColumns + `
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		record := records[i]
		record.ID = uuid.NewString()
		if _, err := stmt.ExecContext(ctx, employeeArgs(record)...); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert employee %s: %w", record.NationalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return len(records), nil
}

// ListNationalIDs returns the natural keys of every stored employee.
func (s *SQLiteStore) ListNationalIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT national_id FROM employees;`)
	if err != nil {
		return nil, fmt.Errorf("query national ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{}, 256)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan national id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate national ids: %w", err)
	}
	return ids, nil
}

func (s *SQLiteStore) ListEmployees(ctx context.Context) ([]employee.Record, error) {
	query := `SELECT ` + employeeColumns + `
FROM employees
ORDER BY surname, given_name, national_id;`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	records := make([]employee.Record, 0, 256)
	for rows.Next() {
		record, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return records, nil
}

// GetEmployeeByNationalID returns one employee by natural key.
func (s *SQLiteStore) GetEmployeeByNationalID(ctx context.Context, nationalID string) (employee.Record, error) {
	if strings.TrimSpace(nationalID) == "" {
		return employee.Record{}, fmt.Errorf("national id must not be empty")
	}

	query := `SELECT ` + employeeColumns + `
FROM employees
WHERE national_id = ?;`

	record, err := scanEmployee(s.db.QueryRowContext(ctx, query, nationalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Record{}, ErrEmployeeNotFound
		}
		return employee.Record{}, fmt.Errorf("query employee %s: %w", nationalID, err)
	}
	return record, nil
}

// DeleteEmployee removes the employee with the given ID.
func (s *SQLiteStore) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, fmt.Errorf("employee id must not be empty")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete employee %s: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *SQLiteStore) DeleteAllEmployees(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees;`)
	if err != nil {
		return 0, fmt.Errorf("delete employees: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}
