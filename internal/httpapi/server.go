package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"snnd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Menu() types.MenuView
	Select(option string) (types.SelectResponse, error)
	Config() types.ConfigResponse
	Progress() types.ProgressResponse
	ClassifierLabel() types.ClassifierResponse
	SetClassifierIndex(i int) types.ClassifierResponse
	Models() ([]types.Model, error)
	Events(limit int) ([]types.Event, error)
	Status() types.StatusResponse
	Ready() bool
	// Wait blocks until the backend has no apply in flight.
	Wait(ctx context.Context) error
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/menu", handleMenu(svc))
	r.Get("/config", handleConfig(svc))
	r.Get("/progress", handleProgress(svc))
	r.Get("/classifier", handleClassifier(svc))
	r.Get("/models", handleModels(svc))
	r.Get("/events", handleEvents(svc))
	r.Get("/status", handleStatus(svc))

	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Post("/menu/select", handleSelect(svc))
		r.Post("/menu/run", handleRun(svc))
		r.Post("/classifier", handleSetClassifier(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// rateLimit rejects mutations beyond the configured rate with 429.
func rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l := mutationLimiter; l != nil && !l.Allow() {
			IncrementBackpressure("rate_limit")
			writeJSONError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleMenu godoc
// @Summary      Current menu state
// @Tags         menu
// @Produce      json
// @Success      200  {object}  types.MenuView
// @Router       /menu [get]
func handleMenu(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, svc.Menu()) }
}

// handleSelect godoc
// @Summary      Toggle a menu option
// @Description  Applies one menu event. Selecting "run" commits the ballot and starts reconfiguring the backend.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body  body      types.SelectRequest  true  "option to select"
// @Success      200   {object}  types.SelectResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      409   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Router       /menu/select [post]
func handleSelect(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SelectRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Option) == "" {
			writeJSONError(w, http.StatusBadRequest, "option is required")
			return
		}
		selectOption(w, r, svc, req.Option)
	}
}

// handleRun godoc
// @Summary      Commit the current selection
// @Description  Shorthand for selecting "run". With wait=true the response is sent once the backend finished applying.
// @Tags         menu
// @Produce      json
// @Param        wait  query     bool  false  "block until applied"
// @Success      200   {object}  types.SelectResponse
// @Failure      409   {object}  types.ErrorResponse
// @Failure      429   {object}  types.ErrorResponse
// @Router       /menu/run [post]
func handleRun(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { selectOption(w, r, svc, "run") }
}

func selectOption(w http.ResponseWriter, r *http.Request, svc Service, option string) {
	start := time.Now()
	opt := func(e *zerolog.Event) { e.Str("option", option) }
	res, err := svc.Select(option)
	if err != nil {
		status := statusFor(err)
		writeJSONError(w, status, err.Error())
		countSelection(option, status)
		logEnd(r, "menu select", status, start, err, opt)
		return
	}
	if res.Ran && waitRequested(r) {
		// Join server base context with request context so shutdown ends the wait too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.Wait(ctx); err != nil {
			// Client gone or server shutting down.
			logEnd(r, "menu select", http.StatusServiceUnavailable, start, err, opt)
			if r.Context().Err() == nil {
				writeJSONError(w, http.StatusServiceUnavailable, "shutting down")
			}
			return
		}
	}
	writeJSON(w, res)
	countSelection(option, http.StatusOK)
	logEnd(r, "menu select", http.StatusOK, start, nil, opt)
}

func waitRequested(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("wait"))
	return err == nil && v
}

// handleConfig godoc
// @Summary      Committed configuration
// @Tags         config
// @Produce      json
// @Success      200  {object}  types.ConfigResponse
// @Router       /config [get]
func handleConfig(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, svc.Config()) }
}

// handleProgress godoc
// @Summary      Loading indicator state
// @Description  Reports loading while a change awaits the backend. The first call after the backend applied a change clears the flag and reports dismissed=true.
// @Tags         config
// @Produce      json
// @Success      200  {object}  types.ProgressResponse
// @Router       /progress [get]
func handleProgress(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, svc.Progress()) }
}

// handleClassifier godoc
// @Summary      Latest classifier label
// @Tags         classifier
// @Produce      json
// @Success      200  {object}  types.ClassifierResponse
// @Router       /classifier [get]
func handleClassifier(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, svc.ClassifierLabel()) }
}

// handleSetClassifier godoc
// @Summary      Report a classifier output index
// @Tags         classifier
// @Accept       json
// @Produce      json
// @Param        body  body      types.ClassifierIndexRequest  true  "classifier output"
// @Success      200   {object}  types.ClassifierResponse
// @Failure      400   {object}  types.ErrorResponse
// @Router       /classifier [post]
func handleSetClassifier(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ClassifierIndexRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Index == nil {
			writeJSONError(w, http.StatusBadRequest, "index is required")
			return
		}
		writeJSON(w, svc.SetClassifierIndex(*req.Index))
	}
}

// handleModels godoc
// @Summary      Model assets
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      422  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /models [get]
func handleModels(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := svc.Models()
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, types.ModelsResponse{Models: models})
	}
}

// handleEvents godoc
// @Summary      Recent reconfiguration events
// @Tags         status
// @Produce      json
// @Param        limit  query     int  false  "maximum number of events (default 50)"
// @Success      200    {object}  types.EventsResponse
// @Failure      400    {object}  types.ErrorResponse
// @Router       /events [get]
func handleEvents(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeJSONError(w, http.StatusBadRequest, "limit must be a non-negative integer")
				return
			}
			limit = n
		}
		evs, err := svc.Events(limit)
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, types.EventsResponse{Events: evs})
	}
}

// handleStatus godoc
// @Summary      Daemon status
// @Tags         status
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func handleStatus(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { writeJSON(w, svc.Status()) }
}

// decodeJSON enforces a JSON content type and the body size limit. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies also land here; report 400 without size details.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
