// Package server exposes the pro forma engine and saved deals over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/internal/engine"
	"github.com/iwvelando/proforma/internal/export"
	"github.com/iwvelando/proforma/internal/storage"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	engine      *engine.Engine
	exporter    *export.Exporter
	store       storage.Store
	maxBodySize int64
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the calculation and
// saved deal API. A nil store disables the /api/deals endpoints.
func NewHandler(logger *zap.Logger, eng *engine.Engine, store storage.Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New(logger, nil)
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      eng,
		exporter:    export.NewExporter(logger, eng),
		store:       store,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
		now:         time.Now,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/calculate", h.handleCalculate)
	mux.HandleFunc("POST /api/export", h.handleExport)
	mux.HandleFunc("GET /api/defaults", h.handleDefaults)

	mux.HandleFunc("GET /api/deals", h.handleListDeals)
	mux.HandleFunc("POST /api/deals", h.handleSaveDeal)
	mux.HandleFunc("DELETE /api/deals", h.handleClearDeals)
	mux.HandleFunc("GET /api/deals/{id}", h.handleGetDeal)
	mux.HandleFunc("DELETE /api/deals/{id}", h.handleDeleteDeal)
	mux.HandleFunc("GET /api/deals/{id}/export.xlsx", h.handleExportDeal)

	mux.HandleFunc("GET /api/version", h.handleVersion)

	return mux
}

// calculateRequest starts from a saved deal when one is given, otherwise
// from a new deal shaped by Options, then applies Edits in order.
type calculateRequest struct {
	Deal    *deal.Deal   `json:"deal,omitempty"`
	Options deal.Options `json:"options"`
	Edits   []deal.Edit  `json:"edits"`
}

type calculateResponse struct {
	Deal         *deal.Deal          `json:"deal"`
	Results      deal.Results        `json:"results"`
	DrawSchedule engine.DrawSchedule `json:"drawSchedule"`
	Warnings     []string            `json:"warnings,omitempty"`
	Duration     string              `json:"duration"`
}

// decodeDeal reads a calculateRequest and runs it through a session.
func (h *handler) decodeDeal(w http.ResponseWriter, r *http.Request, op string) (*deal.Deal, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return nil, false
	}

	var session *engine.Session
	if req.Deal != nil {
		if months := req.Deal.Financing.ConstructionPeriod; months > constants.MaxConstructionPeriod {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("construction period of %d months exceeds %d", months, constants.MaxConstructionPeriod), op)
			return nil, false
		}
		session = h.engine.Restore(req.Deal)
	} else {
		session = h.engine.NewSession(req.Options)
	}
	if err := session.ApplyAll(req.Edits); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return session.Deal(), true
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	start := time.Now()

	d, ok := h.decodeDeal(w, r, op)
	if !ok {
		return
	}
	h.writeCalculation(w, d, start, op)
}

func (h *handler) writeCalculation(w http.ResponseWriter, d *deal.Deal, start time.Time, op string) {
	schedule, err := h.engine.DrawSchedule(d)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to build draw schedule: %v", err), op)
		return
	}

	warnings := validation.ValidateDeal(d)
	for _, warning := range warnings {
		h.logger.Debug("deal warning",
			zap.String("op", op),
			zap.String("warning", warning),
		)
	}

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Deal:         d,
		Results:      d.Results,
		DrawSchedule: schedule,
		Warnings:     warnings,
		Duration:     time.Since(start).String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	d, ok := h.decodeDeal(w, r, op)
	if !ok {
		return
	}
	h.writeWorkbook(w, d, op)
}

func (h *handler) writeWorkbook(w http.ResponseWriter, d *deal.Deal, op string) {
	f, err := h.exporter.Workbook([]*deal.Deal{d})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to build workbook: %v", err), op)
		return
	}
	defer f.Close()

	name := d.ProjectInfo.Name
	if name == "" {
		name = "proforma"
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write workbook",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

type defaultsResponse struct {
	BuildTypes     []string    `json:"buildTypes"`
	Municipalities []string    `json:"municipalities"`
	Dataset        interface{} `json:"dataset"`
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	ds := h.engine.Dataset()
	if r.URL.Query().Get("format") == "yaml" {
		data, err := ds.ExportYAML()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), "server.handleDefaults")
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		BuildTypes:     ds.BuildTypes(),
		Municipalities: ds.MunicipalityKeys(),
		Dataset:        ds,
	})
}

// requireStore reports whether saved deals are enabled, answering 503 when not.
func (h *handler) requireStore(w http.ResponseWriter, op string) bool {
	if h.store == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "saved deals are disabled", op)
		return false
	}
	return true
}

// respondStoreError maps storage errors onto status codes.
func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, storage.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) handleListDeals(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleListDeals"
	if !h.requireStore(w, op) {
		return
	}
	snapshots, err := h.store.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	if snapshots == nil {
		snapshots = []storage.Snapshot{}
	}
	h.writeJSON(w, http.StatusOK, snapshots)
}

func (h *handler) handleSaveDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSaveDeal"
	if !h.requireStore(w, op) {
		return
	}
	d, ok := h.decodeDeal(w, r, op)
	if !ok {
		return
	}

	snap, err := storage.NewSnapshot(d, h.now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := h.store.Save(r.Context(), snap); err != nil {
		h.respondStoreError(w, err, op)
		return
	}

	h.logger.Info("saved deal",
		zap.String("op", op),
		zap.String("id", snap.ID),
		zap.String("project", snap.ProjectName),
	)
	h.writeJSON(w, http.StatusCreated, snap)
}

func (h *handler) handleGetDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGetDeal"
	if !h.requireStore(w, op) {
		return
	}
	snap, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *handler) handleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDeleteDeal"
	if !h.requireStore(w, op) {
		return
	}
	if err := h.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleClearDeals(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleClearDeals"
	if !h.requireStore(w, op) {
		return
	}
	if err := h.store.Clear(r.Context()); err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleExportDeal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportDeal"
	if !h.requireStore(w, op) {
		return
	}
	snap, err := h.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.respondStoreError(w, err, op)
		return
	}
	if snap.Deal == nil {
		h.respondErrorWithOp(w, http.StatusUnprocessableEntity, "saved deal has no deal snapshot", op)
		return
	}
	restored := h.engine.Restore(snap.Deal)
	h.writeWorkbook(w, restored.Deal(), op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Warn("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
