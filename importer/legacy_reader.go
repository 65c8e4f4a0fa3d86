package importer

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	DefaultStatusToken     = "ACTIVO"
	DefaultLegacyMinFields = 20
)

// LegacyHeaders labels the fixed positional layout of tab-delimited roster
// extracts. Positions 21 and 22 carry no data the importer uses.
var LegacyHeaders = []string{
	"Fecha de ingreso",
	"Apellido y Nombre",
	"Fecha de nacimiento",
	"DNI",
	"Puesto",
	"Tipo de contrato",
	"Teléfono",
	"Email",
	"Teléfono de emergencia",
	"Contacto de emergencia",
	"Parentesco",
	"Nivel educativo",
	"Título",
	"Otros conocimientos",
	"Grupo sanguíneo",
	"Alergias",
	"Medicación",
	"Carnet de conducir",
	"Tipo de carnet",
	"Obra social",
	"Detalle obra social",
	"",
	"",
	"Hijos",
	"Nombres de hijos",
}

// LegacyColumns maps the positional layout to catalog keys.
func LegacyColumns() ColumnMap {
	keys := []string{
		FieldHireDate, FieldFullName, FieldBirthDate, FieldNationalID, FieldPosition,
		FieldContractType, FieldPhone, FieldEmail, FieldEmergencyPhone, FieldEmergencyContact,
		FieldEmergencyRelation, FieldEducationLevel, FieldDegree, FieldOtherSkills, FieldBloodType,
		FieldAllergies, FieldMedication, FieldHasLicense, FieldLicenseType, FieldHealthCoverage,
		FieldHealthCoverageDetail,
	}
	columns := make(ColumnMap, len(keys)+2)
	for i, key := range keys {
		columns[i] = []string{key}
	}
	columns[23] = []string{FieldHasChildren}
	columns[24] = []string{FieldChildrenNames}
	return columns
}

type LegacyOptions struct {
	StatusToken string
	MinFields   int
}

func (o LegacyOptions) withDefaults() LegacyOptions {
	if strings.TrimSpace(o.StatusToken) == "" {
		o.StatusToken = DefaultStatusToken
	}
	if o.MinFields <= 0 {
		o.MinFields = DefaultLegacyMinFields
	}
	return o
}

// LegacyReader scans pre-extracted tab-delimited text line by line. A line is
// a record only when one of its fields is the status token and it splits into
// at least MinFields fields; everything else (titles, totals, wrapped text) is
// skipped.
type LegacyReader struct {
	Options LegacyOptions
}

func (r *LegacyReader) Read(path string) (*Sheet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	text, err := decodeLegacyText(raw)
	if err != nil {
		return nil, parseErrorf(path, "decode text: %w", err)
	}
	return r.parse(text), nil
}

func (r *LegacyReader) parse(text string) *Sheet {
	options := r.Options.withDefaults()
	sheet := &Sheet{Headers: append([]string(nil), LegacyHeaders...)}

	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		fields := strings.Split(line, "\t")
		if len(fields) < options.MinFields || !hasToken(fields, options.StatusToken) {
			continue
		}
		sheet.appendRow(fields, i+1)
	}
	return sheet
}

func hasToken(fields []string, token string) bool {
	for _, field := range fields {
		if strings.EqualFold(strings.TrimSpace(field), token) {
			return true
		}
	}
	return false
}

// decodeLegacyText honours UTF-8/UTF-16 byte order marks and falls back to
// Latin-1 for text that is not valid UTF-8.
func decodeLegacyText(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) || bytes.HasPrefix(raw, []byte{0xFE, 0xFF}) || bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), decoder))
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
