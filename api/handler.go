package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/0xalexb/presetkit/config/document"
	"github.com/0xalexb/presetkit/listener/middleware"
	"github.com/0xalexb/presetkit/preset"
)

// Catalog lists presets and loads them by name.
type Catalog interface {
	List() ([]preset.Info, error)
	LoadName(name string) (document.Document, error)
}

// DefaultsSource supplies the user defaults layer.
type DefaultsSource interface {
	Defaults() (document.Document, error)
}

// ResolveRequest is the body of POST /resolve.
type ResolveRequest struct {
	Preset    string           `json:"preset"`
	Name      string           `json:"name"`
	Overrides preset.Overrides `json:"overrides"`
}

// PresetList is the body of GET /presets.
type PresetList struct {
	Presets []preset.Info `json:"presets"`
}

// Handler serves the resolution API.
type Handler struct {
	catalog  Catalog
	defaults DefaultsSource
	builder  *preset.Builder
	resolver *preset.Resolver
	logger   *slog.Logger
	router   chi.Router
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithDefaults layers the user defaults under every resolution.
func WithDefaults(source DefaultsSource) HandlerOption {
	return func(h *Handler) {
		h.defaults = source
	}
}

// WithLogger sets the logger for requests and failures.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler builds the router for cfg on top of catalog.
func NewHandler(catalog Catalog, cfg Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		catalog: catalog,
		logger:  slog.Default(),
	}

	for _, apply := range opts {
		apply(h)
	}

	loader := namedLoader{catalog: catalog}
	h.builder = preset.NewBuilder(loader, preset.WithLogger(h.logger))
	h.resolver = preset.NewResolver(catalog)
	h.router = h.routes(cfg)

	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes(cfg Config) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logging(h.logger))
	router.Use(middleware.Recovery(h.logger))

	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", chimiddleware.RequestIDHeader},
			ExposedHeaders: []string{chimiddleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	if cfg.RateLimit > 0 {
		router.Use(middleware.RateLimit(cfg.RateLimit, cfg.Burst))
	}

	router.Use(middleware.Timeout(cfg.requestTimeout()))
	router.Use(chimiddleware.Compress(5))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusNotFound, middleware.CodeNotFound, "route not found", nil)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusMethodNotAllowed, middleware.CodeMethodNotAllowed,
			r.Method+" is not allowed here", nil)
	})

	router.Get("/presets", h.listPresets)
	router.Get("/presets/{name}", h.showPreset)
	router.With(middleware.MaxRequestSize(cfg.MaxBodyBytes)).Post("/resolve", h.resolve)

	return router
}

func (h *Handler) listPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.catalog.List()
	if err != nil {
		h.writeFailure(w, r, err)

		return
	}

	if presets == nil {
		presets = []preset.Info{}
	}

	middleware.WriteJSON(w, http.StatusOK, PresetList{Presets: presets})
}

func (h *Handler) showPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := h.catalog.LoadName(name)
	if err != nil {
		h.writeFailure(w, r, err)

		return
	}

	resolved, err := h.resolver.Resolve(doc)
	if err != nil {
		h.writeFailure(w, r, err)

		return
	}

	middleware.WriteJSON(w, http.StatusOK, resolved)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&req)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, r, http.StatusRequestEntityTooLarge, middleware.CodeBodyTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil)

			return
		}

		middleware.WriteError(w, r, http.StatusBadRequest, middleware.CodeInvalidRequest,
			"malformed request body: "+err.Error(), nil)

		return
	}

	ref := strings.TrimSpace(req.Preset)
	if ref == "" {
		ref = preset.DefaultPreset
	}

	var defaults document.Document

	if h.defaults != nil {
		defaults, err = h.defaults.Defaults()
		if err != nil {
			h.writeFailure(w, r, fmt.Errorf("loading user defaults: %w", err))

			return
		}
	}

	var overrides document.Document
	if !req.Overrides.IsZero() {
		overrides = req.Overrides.Document()
	}

	cfg, err := h.builder.Build(ref, defaults, overrides, req.Name)
	if err != nil {
		h.writeFailure(w, r, err)

		return
	}

	middleware.WriteJSON(w, http.StatusOK, cfg)
}

// writeFailure maps resolution errors onto HTTP statuses.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var validation *preset.ValidationError

	switch {
	case errors.Is(err, preset.ErrNotFound):
		middleware.WriteError(w, r, http.StatusNotFound, middleware.CodeNotFound, err.Error(), nil)
	case errors.As(err, &validation):
		h.logger.Info("configuration rejected", slog.Any("fields", validation.Paths()))
		middleware.WriteError(w, r, http.StatusUnprocessableEntity, middleware.CodeInvalidConfig,
			err.Error(), map[string]any{"fields": validation.Fields})
	case errors.Is(err, preset.ErrParse), errors.Is(err, preset.ErrInheritance):
		middleware.WriteError(w, r, http.StatusUnprocessableEntity, middleware.CodeInvalidPreset, err.Error(), nil)
	default:
		h.logger.Error("request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		middleware.WriteError(w, r, http.StatusInternalServerError, middleware.CodeInternalError,
			"internal server error", nil)
	}
}

// namedLoader keeps clients from reading arbitrary file paths.
type namedLoader struct {
	catalog Catalog
}

func (l namedLoader) Load(name string) (document.Document, error) {
	return l.catalog.LoadName(name) //nolint:wrapcheck
}
