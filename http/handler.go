package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sagarc03/stowgate"
)

// Uploader is the two-phase upload workflow.
type Uploader interface {
	Prepare(ctx context.Context, req stowgate.PrepareRequest) (stowgate.UploadTicket, error)
	Put(ctx context.Context, req stowgate.PutRequest, body io.Reader) (stowgate.PutResult, error)
}

// Diagnostics answers the database probe endpoints.
type Diagnostics interface {
	CountUsers(ctx context.Context) (int64, error)
	ListTables(ctx context.Context) ([]string, error)
}

type HandlerConfig struct {
	// Env is reported by the health endpoint; "unknown" when empty.
	Env        string
	AdminToken string
	Headers    HeaderConfig
}

// Handler provides the HTTP API of the gateway.
type Handler struct {
	config      HandlerConfig
	uploads     Uploader
	diagnostics Diagnostics
}

// NewHandler creates a new Handler with the given configuration and services.
func NewHandler(config *HandlerConfig, uploads Uploader, diagnostics Diagnostics) *Handler {
	return &Handler{
		config:      *config,
		uploads:     uploads,
		diagnostics: diagnostics,
	}
}

// Router returns an http.Handler with all routes and middleware configured.
// The header policy wraps routing so that OPTIONS requests and 404s carry it.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(HeaderPolicy(h.config.Headers))
	r.Use(Recoverer)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleNotFound)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/ping", h.handlePing)
		r.Get("/test-db", h.handleTestDB)
		r.Get("/db-tables", h.handleDBTables)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly(h.config.AdminToken))
			r.Post("/uploads/prepare", h.handlePrepare)
			r.Put("/uploads/put", h.handlePut)
			r.Put("/uploads/put/*", h.handlePut)
		})
	})

	return r
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteNotFound(w, r.URL.Path)
}

type healthResponse struct {
	OK  bool   `json:"ok"`
	Env string `json:"env"`
	Now string `json:"now"`
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	env := h.config.Env
	if env == "" {
		env = "unknown"
	}

	_ = WriteJSON(w, http.StatusOK, healthResponse{
		OK:  true,
		Env: env,
		Now: time.Now().UTC().Format(isoMillis),
	})
}

func (h *Handler) handlePing(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]bool{"pong": true})
}

type testDBResponse struct {
	OK    bool  `json:"ok"`
	Users int64 `json:"users"`
}

func (h *Handler) handleTestDB(w http.ResponseWriter, r *http.Request) {
	n, err := h.diagnostics.CountUsers(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, testDBResponse{OK: true, Users: n})
}

type tablesResponse struct {
	OK     bool     `json:"ok"`
	Tables []string `json:"tables"`
}

func (h *Handler) handleDBTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.diagnostics.ListTables(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}

	_ = WriteJSON(w, http.StatusOK, tablesResponse{OK: true, Tables: tables})
}

type ticketResponse struct {
	OK bool `json:"ok"`
	stowgate.UploadTicket
}

func (h *Handler) handlePrepare(w http.ResponseWriter, r *http.Request) {
	var req stowgate.PrepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// malformed or empty bodies count as an empty object
		req = stowgate.PrepareRequest{}
	}

	ticket, err := h.uploads.Prepare(r.Context(), req)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, ticketResponse{OK: true, UploadTicket: ticket})
}

type putResponse struct {
	OK bool `json:"ok"`
	stowgate.PutResult
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	req := stowgate.PutRequest{
		Key:         r.URL.Query().Get("key"),
		ContentType: r.Header.Get("Content-Type"),
		Size:        r.ContentLength,
	}

	result, err := h.uploads.Put(r.Context(), req, r.Body)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, putResponse{OK: true, PutResult: result})
}
