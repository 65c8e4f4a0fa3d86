// Package web serves a localhost-only single-user import API; it has no
// auth/CSRF protection in this mode.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"hrimport/config"
	"hrimport/employee"
	"hrimport/importer"
	"hrimport/output"
)

const maxUploadBytes = 32 << 20

// Store is the employee persistence the server needs.
type Store interface {
	importer.EmployeeStore
	ListEmployees(ctx context.Context) ([]employee.Record, error)
}

type Server struct {
	store    Store
	cfg      config.Config
	logger   *logrus.Entry
	validate *validator.Validate
	mux      *http.ServeMux

	// importMu serializes imports so two uploads never race on the
	// existing-keys snapshot.
	importMu sync.Mutex
}

type importRequest struct {
	Strategy string         `validate:"omitempty,oneof=structured legacy"`
	Format   string         `validate:"omitempty,oneof=csv xls xlsx xlsm excel text txt tsv"`
	Mapping  map[string]int `validate:"omitempty,dive,keys,required,endkeys,gte=-1"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func NewServer(store Store, cfg config.Config, logger *logrus.Entry) http.Handler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	server := &Server{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/catalog", server.handleAPICatalog)
	mux.HandleFunc("GET /api/employees", server.handleAPIEmployees)
	mux.HandleFunc("GET /api/employees/summary", server.handleAPIEmployeeSummary)
	mux.HandleFunc("POST /api/import/preview", server.handleAPIImportPreview)
	mux.HandleFunc("POST /api/import", server.handleAPIImport)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleAPICatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Catalog())
}

func (s *Server) handleAPIEmployees(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListEmployees(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("list employees: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, BuildEmployeeViews(records))
}

func (s *Server) handleAPIEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListEmployees(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("list employees: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, output.BuildDepartmentSummaries(records))
}

func (s *Server) handleAPIImportPreview(w http.ResponseWriter, r *http.Request) {
	upload, req, ok := s.receiveUpload(w, r)
	if !ok {
		return
	}
	defer upload.cleanup()

	im := s.newImporter()
	source := s.sourceFor(upload, req)
	sheet, err := im.Read(source)
	if err != nil {
		s.writeImportError(w, err)
		return
	}

	mapper := importer.NewColumnMapper(im.Catalog, sheet)
	if source.Strategy == importer.StrategyLegacy {
		applyMapping(mapper, legacyBindings())
	}
	applyMapping(mapper, req.Mapping)
	mapper.Suggest()

	writeJSON(w, http.StatusOK, BuildPreview(upload.name, source.Strategy, sheet, mapper))
}

func (s *Server) handleAPIImport(w http.ResponseWriter, r *http.Request) {
	upload, req, ok := s.receiveUpload(w, r)
	if !ok {
		return
	}
	defer upload.cleanup()

	s.importMu.Lock()
	defer s.importMu.Unlock()

	im := s.newImporter()
	source := s.sourceFor(upload, req)
	log := s.logger.WithFields(logrus.Fields{"file": upload.name, "strategy": string(source.Strategy)})

	sheet, err := im.Read(source)
	if err != nil {
		log.WithError(err).Warn("read upload failed")
		s.writeImportError(w, err)
		return
	}

	if req.Mapping != nil {
		mapper := importer.NewColumnMapper(im.Catalog, sheet)
		applyMapping(mapper, req.Mapping)
		columns, err := mapper.Confirm()
		if err != nil {
			log.WithError(err).Info("import rejected")
			s.writeImportError(w, err)
			return
		}
		source.Columns = columns
	}

	prepared, err := im.Prepare(sheet, source)
	if err != nil {
		log.WithError(err).Info("import rejected")
		s.writeImportError(w, err)
		return
	}

	outcome, err := im.Commit(r.Context(), prepared, log)
	if err != nil {
		s.writeImportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) newImporter() *importer.Importer {
	return &importer.Importer{
		Store:      s.store,
		Normalizer: importer.NewNormalizer(s.cfg.NormalizerOptions()),
		Catalog:    s.cfg.Catalog(),
		Legacy:     s.cfg.LegacyOptions(),
		Logger:     s.logger,
	}
}

func (s *Server) sourceFor(upload *savedUpload, req importRequest) importer.Source {
	strategy, _ := importer.ParseStrategy(req.Strategy)
	if req.Strategy == "" {
		strategy, _ = importer.ParseStrategy(s.cfg.Import.Strategy)
	}
	return importer.Source{
		Path:     upload.path,
		Name:     upload.name,
		Format:   req.Format,
		Strategy: strategy,
	}
}

type savedUpload struct {
	path string
	name string
}

func (u *savedUpload) cleanup() {
	_ = os.Remove(u.path)
}

// receiveUpload stores the multipart "file" in a temp file and validates the
// accompanying form values. It writes the error response itself.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (*savedUpload, importRequest, bool) {
	var req importRequest
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return nil, req, false
	}

	req.Strategy = strings.ToLower(strings.TrimSpace(r.FormValue("strategy")))
	req.Format = strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	if raw := strings.TrimSpace(r.FormValue("mapping")); raw != "" {
		if err := decodeMapping(raw, &req.Mapping); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, req, false
		}
	}
	if err := s.validate.Struct(req); err != nil {
		http.Error(w, fmt.Sprintf("invalid import request: %v", err), http.StatusBadRequest)
		return nil, req, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return nil, req, false
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return nil, req, false
	}
	upload := &savedUpload{path: tmp.Name(), name: filepath.Base(header.Filename)}

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		upload.cleanup()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return nil, req, false
	}
	if err := tmp.Close(); err != nil {
		upload.cleanup()
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return nil, req, false
	}

	return upload, req, true
}

// decodeMapping parses a {"field_key": column} object and rejects keys outside
// the employee catalog.
func decodeMapping(raw string, out *map[string]int) error {
	decoder := json.NewDecoder(strings.NewReader(raw))
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("invalid mapping: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("mapping must contain a single JSON object")
	}
	for key := range *out {
		if !importer.IsCatalogKey(key) {
			return fmt.Errorf("invalid mapping: unknown field %q", key)
		}
	}
	if *out == nil {
		*out = map[string]int{}
	}
	return nil
}

func applyMapping(mapper *importer.ColumnMapper, mapping map[string]int) {
	for key, column := range mapping {
		mapper.SetBinding(key, column)
	}
}

func legacyBindings() map[string]int {
	bindings := make(map[string]int)
	for column, keys := range importer.LegacyColumns() {
		for _, key := range keys {
			bindings[key] = column
		}
	}
	return bindings
}

func (s *Server) writeImportError(w http.ResponseWriter, err error) {
	response := errorResponse{Error: err.Error()}

	var incomplete *importer.MappingIncompleteError
	if errors.As(err, &incomplete) {
		for _, field := range incomplete.Missing {
			response.Missing = append(response.Missing, field.Key)
		}
	}
	writeJSON(w, importErrorStatus(err), response)
}

// importErrorStatus maps pipeline errors to HTTP statuses. Parse errors and
// anything else about the upload itself are client errors.
func importErrorStatus(err error) int {
	var (
		storeErr   *importer.StoreError
		incomplete *importer.MappingIncompleteError
	)
	switch {
	case errors.As(err, &incomplete):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storeErr):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}
