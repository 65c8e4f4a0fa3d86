package importer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func scenarioSheet() *Sheet {
	return newSheet([][]string{
		{"Estado", "Fecha de ingreso", "Apellido y Nombre", "DNI", "Observaciones"},
		{"ACTIVO", "15/03/2020", "Pérez, Juan", "30111222", ""},
		{"INACTIVO", "01/02/2019", "Gómez, Ana", "40222333", strings.Repeat("x", 45)},
	})
}

func TestColumnMapper_ReadyOnlyWhenRequiredFieldsBound(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	if mapper.IsReady() {
		t.Fatal("empty mapping must not be ready")
	}
	if got := len(mapper.Missing()); got != 2 {
		t.Fatalf("expected 2 missing required fields, got %d", got)
	}

	mapper.SetBinding(FieldNationalID, 3)
	if mapper.IsReady() {
		t.Fatal("mapping without full name must not be ready")
	}

	mapper.SetBinding(FieldFullName, 2)
	if !mapper.IsReady() {
		t.Fatalf("expected ready, missing %v", mapper.Missing())
	}

	mapper.SetBinding(FieldFullName, Unmapped)
	if mapper.IsReady() {
		t.Fatal("clearing a required binding must make the mapping not ready")
	}
}

func TestColumnMapper_OptionalBindingsDoNotChangeReadiness(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	mapper.SetBinding(FieldStatus, 0)
	mapper.SetBinding(FieldHireDate, 1)
	if mapper.IsReady() {
		t.Fatal("optional bindings alone must not make the mapping ready")
	}

	mapper.SetBinding(FieldNationalID, 3)
	mapper.SetBinding(FieldFullName, 2)
	mapper.SetBinding(FieldHireDate, Unmapped)
	mapper.SetBinding("not_a_field", 4)
	if !mapper.IsReady() {
		t.Fatal("optional changes must not affect readiness")
	}
}

func TestColumnMapper_PreviewValue(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())

	tests := []struct {
		name   string
		column int
		row    int
		want   string
	}{
		{name: "value", column: 2, row: 0, want: "Pérez, Juan"},
		{name: "blank cell", column: 4, row: 0, want: PreviewEmpty},
		{name: "column out of range", column: 9, row: 0, want: PreviewNotApplicable},
		{name: "negative column", column: Unmapped, row: 0, want: PreviewNotApplicable},
		{name: "row out of range", column: 0, row: 5, want: PreviewNotApplicable},
		{name: "long value", column: 4, row: 1, want: strings.Repeat("x", 29) + "…"},
	}

	for _, tc := range tests {
		if got := mapper.PreviewValue(tc.column, tc.row); got != tc.want {
			t.Fatalf("%s: want %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestColumnMapper_ConfirmFailsClosed(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	mapper.SetBinding(FieldFullName, 2)

	columns, err := mapper.Confirm()
	if columns != nil {
		t.Fatalf("expected no mapping, got %v", columns)
	}
	var incomplete *MappingIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *MappingIncompleteError, got %T (%v)", err, err)
	}
	if len(incomplete.Missing) != 1 || incomplete.Missing[0].Key != FieldNationalID {
		t.Fatalf("unexpected missing fields: %+v", incomplete.Missing)
	}
	if !strings.Contains(err.Error(), "DNI") {
		t.Fatalf("expected error to name the missing field, got %q", err.Error())
	}
}

func TestColumnMapper_ConfirmInvertsBindings(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	mapper.SetBinding(FieldNationalID, 3)
	mapper.SetBinding(FieldFullName, 2)
	mapper.SetBinding(FieldPhone, 4)
	mapper.SetBinding(FieldEmergencyPhone, 4)
	mapper.SetBinding("not_a_field", 0)

	columns, err := mapper.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	want := ColumnMap{
		2: {FieldFullName},
		3: {FieldNationalID},
		4: {FieldPhone, FieldEmergencyPhone},
	}
	if !reflect.DeepEqual(columns, want) {
		t.Fatalf("want %v, got %v", want, columns)
	}
	if got := columns.Columns(); !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Fatalf("unexpected column order %v", got)
	}
}

func TestColumnMapper_SuggestBindsKnownHeaders(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	added := mapper.Suggest()

	want := map[string]int{
		FieldStatus:     0,
		FieldHireDate:   1,
		FieldFullName:   2,
		FieldNationalID: 3,
	}
	if !reflect.DeepEqual(added, want) {
		t.Fatalf("want %v, got %v", want, added)
	}
	if !mapper.IsReady() {
		t.Fatal("expected suggested mapping to be ready")
	}
}

func TestColumnMapper_SuggestKeepsExistingBindings(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	mapper.SetBinding(FieldNationalID, 4)
	added := mapper.Suggest()

	if _, ok := added[FieldNationalID]; ok {
		t.Fatal("suggest must not rebind an operator binding")
	}
	if column, _ := mapper.Binding(FieldNationalID); column != 4 {
		t.Fatalf("expected national id to stay on column 4, got %d", column)
	}
}

func TestColumnMapper_SuggestToleratesAccentsAndTypos(t *testing.T) {
	t.Parallel()

	sheet := newSheet([][]string{
		{"N° Documento", "APELLIDO Y NOMBRES", "Telefono", "Grupo Sanguineo", "Obra Soscial"},
		{"30111222", "Pérez, Juan", "555", "0+", "si"},
	})
	mapper := NewColumnMapper(EmployeeCatalog(), sheet)
	added := mapper.Suggest()

	want := map[string]int{
		FieldNationalID:     0,
		FieldFullName:       1,
		FieldPhone:          2,
		FieldBloodType:      3,
		FieldHealthCoverage: 4,
	}
	for key, column := range want {
		if added[key] != column {
			t.Fatalf("%s: want column %d, got %v", key, column, added)
		}
	}
}

func TestColumnMapper_SuggestMatchesWholeWordsOnly(t *testing.T) {
	t.Parallel()

	sheet := newSheet([][]string{
		{"Apellido y Nombre", "DNI", "Estado civil", "Tareas", "Cantidad de hijos"},
		{"Pérez, Juan", "30111222", "Soltero", "Cosecha", "2"},
	})
	mapper := NewColumnMapper(EmployeeCatalog(), sheet)
	added := mapper.Suggest()

	if column, ok := added[FieldStatus]; ok {
		t.Fatalf("status must only bind an exact header, got column %d", column)
	}
	if column, ok := added[FieldDepartment]; ok {
		t.Fatalf("\"Tareas\" must not bind department, got column %d", column)
	}
	if column := added[FieldHasChildren]; column != 4 {
		t.Fatalf("expected whole-word \"hijos\" suggestion on column 4, got %v", added)
	}
}

func TestColumnMapper_SetBindingValue(t *testing.T) {
	t.Parallel()

	mapper := NewColumnMapper(EmployeeCatalog(), scenarioSheet())
	mapper.SetBindingValue(FieldNationalID, " 3 ")
	if column, ok := mapper.Binding(FieldNationalID); !ok || column != 3 {
		t.Fatalf("expected binding to column 3, got %d (%v)", column, ok)
	}

	mapper.SetBindingValue(FieldNationalID, "")
	if _, ok := mapper.Binding(FieldNationalID); ok {
		t.Fatal("empty value must clear the binding")
	}

	mapper.SetBindingValue(FieldFullName, "abc")
	if _, ok := mapper.Binding(FieldFullName); ok {
		t.Fatal("non-numeric value must leave the field unbound")
	}
}

func TestResolveHeaderColumns_MissingRequiredHeader(t *testing.T) {
	t.Parallel()

	sheet := newSheet([][]string{{"Estado", "Apellido y Nombre"}, {"ACTIVO", "Pérez, Juan"}})
	_, err := ResolveHeaderColumns(EmployeeCatalog(), sheet)
	var incomplete *MappingIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *MappingIncompleteError, got %v", err)
	}
}

func TestResolveHeaderColumns_ExactAliasesOnly(t *testing.T) {
	t.Parallel()

	sheet := newSheet([][]string{
		{"Apellido y Nombre", "DNI", "Estado civil", "Tareas", "Cantidad de hijos", "Obra Soscial"},
		{"Pérez, Juan", "30111222", "Soltero", "Cosecha", "2", "si"},
	})
	columns, err := ResolveHeaderColumns(EmployeeCatalog(), sheet)
	if err != nil {
		t.Fatalf("resolve columns: %v", err)
	}

	want := ColumnMap{0: {FieldFullName}, 1: {FieldNationalID}}
	if !reflect.DeepEqual(columns, want) {
		t.Fatalf("want %v, got %v", want, columns)
	}
}
