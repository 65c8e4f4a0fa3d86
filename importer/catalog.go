package importer

// Canonical employee field keys.
const (
	FieldStatus               = "status"
	FieldHireDate             = "hire_date"
	FieldFullName             = "full_name"
	FieldBirthDate            = "birth_date"
	FieldNationalID           = "national_id"
	FieldPosition             = "position"
	FieldContractType         = "contract_type"
	FieldDepartment           = "department"
	FieldPhone                = "phone"
	FieldEmail                = "email"
	FieldAddress              = "address"
	FieldEmergencyPhone       = "emergency_phone"
	FieldEmergencyContact     = "emergency_contact"
	FieldEmergencyRelation    = "emergency_relation"
	FieldEducationLevel       = "education_level"
	FieldDegree               = "degree"
	FieldOtherSkills          = "other_skills"
	FieldBloodType            = "blood_type"
	FieldAllergies            = "allergies"
	FieldMedication           = "medication"
	FieldHasLicense           = "has_license"
	FieldLicenseType          = "license_type"
	FieldHealthCoverage       = "health_coverage"
	FieldHealthCoverageDetail = "health_coverage_detail"
	FieldHasChildren          = "has_children"
	FieldChildrenNames        = "children_names"
)

// FieldDefinition describes one canonical field an operator can bind a column to.
type FieldDefinition struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Required    bool     `json:"required"`
	Description string   `json:"description"`
	Aliases     []string `json:"-"`
	// ExactOnly fields are suggested only when a header equals one of their aliases.
	ExactOnly bool `json:"-"`
}

// EmployeeCatalog returns the canonical employee fields in display order.
func EmployeeCatalog() []FieldDefinition {
	return []FieldDefinition{
		{Key: FieldNationalID, Label: "DNI", Required: true, Description: "National identity document number; used to detect duplicates.",
			Aliases: []string{"dni", "documento", "nro documento", "numero de documento", "cuil", "cuit", "national id"}},
		{Key: FieldFullName, Label: "Apellido y Nombre", Required: true, Description: "Full name as \"Surname, Given names\".",
			Aliases: []string{"apellido y nombre", "apellido y nombres", "nombre y apellido", "nombre completo", "empleado", "nombre", "full name"}},
		{Key: FieldStatus, Label: "Estado", Description: "Employment status; only active rows are imported.",
			Aliases: []string{"estado", "situacion", "situacion laboral", "status"}, ExactOnly: true},
		{Key: FieldHireDate, Label: "Fecha de ingreso", Description: "Hire date.",
			Aliases: []string{"fecha de ingreso", "ingreso", "fecha ingreso", "alta", "fecha de alta", "hire date"}},
		{Key: FieldBirthDate, Label: "Fecha de nacimiento", Description: "Birth date.",
			Aliases: []string{"fecha de nacimiento", "nacimiento", "fecha nac", "birth date"}},
		{Key: FieldPosition, Label: "Puesto", Description: "Position held or applied for.",
			Aliases: []string{"puesto", "cargo", "posicion", "puesto al que se postula", "position"}},
		{Key: FieldContractType, Label: "Tipo de contrato", Description: "Contract type.",
			Aliases: []string{"tipo de contrato", "contrato", "modalidad", "contract type"}},
		{Key: FieldDepartment, Label: "Área", Description: "Department or area.",
			Aliases: []string{"area", "departamento", "sector", "department"}},
		{Key: FieldPhone, Label: "Teléfono", Description: "Contact phone.",
			Aliases: []string{"telefono", "celular", "tel", "phone"}},
		{Key: FieldEmail, Label: "Email", Description: "Contact e-mail address.",
			Aliases: []string{"email", "e-mail", "correo", "correo electronico", "mail"}},
		{Key: FieldAddress, Label: "Domicilio", Description: "Home address.",
			Aliases: []string{"domicilio", "direccion", "address"}},
		{Key: FieldEmergencyPhone, Label: "Teléfono de emergencia", Description: "Emergency contact phone.",
			Aliases: []string{"telefono de emergencia", "tel emergencia", "telefono emergencia"}},
		{Key: FieldEmergencyContact, Label: "Contacto de emergencia", Description: "Emergency contact name.",
			Aliases: []string{"contacto de emergencia", "contacto emergencia", "en caso de emergencia avisar a"}},
		{Key: FieldEmergencyRelation, Label: "Parentesco", Description: "Relation of the emergency contact.",
			Aliases: []string{"parentesco", "vinculo", "relacion"}},
		{Key: FieldEducationLevel, Label: "Nivel educativo", Description: "Highest education level.",
			Aliases: []string{"nivel educativo", "estudios", "nivel de estudios", "educacion"}},
		{Key: FieldDegree, Label: "Título", Description: "Degree or certificate obtained.",
			Aliases: []string{"titulo", "titulo obtenido", "carrera"}},
		{Key: FieldOtherSkills, Label: "Otros conocimientos", Description: "Other skills or prior experience.",
			Aliases: []string{"otros conocimientos", "conocimientos", "experiencia previa", "experiencia"}},
		{Key: FieldBloodType, Label: "Grupo sanguíneo", Description: "Blood type.",
			Aliases: []string{"grupo sanguineo", "grupo y factor", "factor"}},
		{Key: FieldAllergies, Label: "Alergias", Description: "Whether the employee has allergies (sí/no).",
			Aliases: []string{"alergias", "alergico", "es alergico"}},
		{Key: FieldMedication, Label: "Medicación", Description: "Regular medication.",
			Aliases: []string{"medicacion", "toma medicacion", "medicamentos"}},
		{Key: FieldHasLicense, Label: "Carnet de conducir", Description: "Whether the employee holds a driver's license (sí/no).",
			Aliases: []string{"carnet de conducir", "licencia de conducir", "registro", "carnet"}},
		{Key: FieldLicenseType, Label: "Tipo de carnet", Description: "Driver's license classes, e.g. \"B1, A2\".",
			Aliases: []string{"tipo de carnet", "clase de licencia", "categoria", "tipo de licencia"}},
		{Key: FieldHealthCoverage, Label: "Obra social", Description: "Whether the employee has health coverage (sí/no).",
			Aliases: []string{"obra social", "cobertura medica", "prepaga"}},
		{Key: FieldHealthCoverageDetail, Label: "Detalle obra social", Description: "Health coverage provider.",
			Aliases: []string{"detalle obra social", "cual obra social", "nombre obra social"}},
		{Key: FieldHasChildren, Label: "Hijos", Description: "Whether the employee has children (sí/no).",
			Aliases: []string{"hijos", "tiene hijos"}},
		{Key: FieldChildrenNames, Label: "Nombres de hijos", Description: "Children's names.",
			Aliases: []string{"nombres de hijos", "nombre de los hijos", "hijos nombres"}},
	}
}

// IsCatalogKey reports whether key names a field of the employee catalog.
func IsCatalogKey(key string) bool {
	for _, field := range EmployeeCatalog() {
		if field.Key == key {
			return true
		}
	}
	return false
}

// WithAliases returns a copy of catalog with extra header aliases appended per field key.
func WithAliases(catalog []FieldDefinition, extra map[string][]string) []FieldDefinition {
	out := make([]FieldDefinition, len(catalog))
	for i, field := range catalog {
		field.Aliases = append(append([]string(nil), field.Aliases...), extra[field.Key]...)
		out[i] = field
	}
	return out
}

// AliasOwner returns the key of the catalog field that already answers to
// alias through its key, label or aliases.
func AliasOwner(catalog []FieldDefinition, alias string) (string, bool) {
	want := normalizeHeader(alias)
	if want == "" {
		return "", false
	}
	for _, field := range catalog {
		for _, candidate := range append([]string{field.Key, field.Label}, field.Aliases...) {
			if normalizeHeader(candidate) == want {
				return field.Key, true
			}
		}
	}
	return "", false
}
