package http

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"expensecast/internal/core"
	"expensecast/internal/ingest/excel"
	applog "expensecast/internal/log"
)

// handleUpload accepts an XLSX workbook and replaces the in-memory
// dataset with its contents. One sheet becomes one category.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			errorJSON(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		errorJSON(w, http.StatusBadRequest, "expected a multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		errorJSON(w, http.StatusUnsupportedMediaType, "only .xlsx workbooks are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "could not read the uploaded file")
		return
	}
	digest := fmt.Sprintf("%x", sha256.Sum256(data))

	m, err := excel.Parse(r.Context(), bytes.NewReader(data))
	if err != nil {
		s.logger.LogError(r.Context(), "upload parse failed", err,
			applog.ComponentIngest, applog.OpUpload, applog.NewFields())
		errorJSON(w, http.StatusUnprocessableEntity, "could not read any transactions from the workbook")
		return
	}

	g := core.NewGroups(m)
	if len(g.Names()) == 0 {
		errorJSON(w, http.StatusUnprocessableEntity, "workbook contains no usable sheets")
		return
	}
	s.setDataset(g)
	s.logger.LogDatasetLoaded(r.Context(), "upload", digest, len(g.Names()), g.Len())

	writeJSON(w, http.StatusOK, map[string]any{
		"categories":   g.Names(),
		"transactions": g.Len(),
	})
}
