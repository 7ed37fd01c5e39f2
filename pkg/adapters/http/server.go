package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/troupe"
	"github.com/aretw0/troupe/internal/compiler"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/schema"
	"github.com/go-chi/chi/v5"
)

const (
	// maxDefinitionSize bounds request bodies.
	maxDefinitionSize = 1 << 20
	// maxRunIDLength bounds caller-chosen run IDs.
	maxRunIDLength = 128
	// RunIDHeader carries a caller-chosen run ID on POST /v1/execute and
	// echoes the run ID on the response.
	RunIDHeader = "X-Run-ID"
)

// Engine defines what the HTTP API needs from the Troupe engine.
type Engine interface {
	Execute(ctx context.Context, def *domain.Definition, dry bool) (*domain.Run, error)
	Validate(def *domain.Definition) error
	Kinds() []string
	Lookup(kind string) (domain.Actor, error)
}

// Server exposes an Engine over HTTP.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
}

// KindInfo describes a registered kind.
type KindInfo struct {
	Kind      string         `json:"kind"`
	Composite bool           `json:"composite"`
	Options   schema.Options `json:"options"`
}

// ErrorInfo is one build problem, located in the definition.
type ErrorInfo struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// NewServer creates a server. Streams may be nil when events are not needed.
func NewServer(engine Engine, streams *StreamManager, logger *slog.Logger) *Server {
	if streams == nil {
		streams = NewStreamManager()
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Server{Engine: engine, Streams: streams, Logger: logger}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/kinds", s.ListKinds)
		r.Get("/kinds/{kind}", s.GetKind)
		r.Post("/validate", s.Validate)
		r.Post("/execute", s.Execute)
		r.Get("/events", s.SubscribeEvents)
	})

	return enableCORS(r)
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine) http.Handler {
	return NewServer(engine, nil, nil).Handler()
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RunIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RunIDHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "troupe-http",
		"version": troupe.Version,
	})
}

// ListKinds handles the GET /v1/kinds request.
func (s *Server) ListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := s.Engine.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, kind := range kinds {
		actor, err := s.Engine.Lookup(kind)
		if err != nil {
			continue
		}
		infos = append(infos, kindInfo(kind, actor))
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// GetKind handles the GET /v1/kinds/{kind} request.
func (s *Server) GetKind(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	actor, err := s.Engine.Lookup(kind)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, kindInfo(kind, actor))
}

// Validate handles the POST /v1/validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	def, ok := s.readDefinition(w, r)
	if !ok {
		return
	}
	if err := s.Engine.Validate(def); err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"valid": false, "errors": errorInfos(err)})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

// Execute handles the POST /v1/execute?dry=<bool>&run_id=<id> request.
// The run ID may also come from the X-Run-ID header; a client that picks it
// can subscribe to GET /v1/events?run_id=<id> before executing.
// A run that fails still answers 200; the failure is in the run's result.
func (s *Server) Execute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	dry := false
	if raw := query.Get("dry"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid dry flag %q", raw))
			return
		}
		dry = parsed
	}

	runID := query.Get("run_id")
	if runID == "" {
		runID = r.Header.Get(RunIDHeader)
	}
	if len(runID) > maxRunIDLength || strings.ContainsAny(runID, "\r\n") {
		s.writeError(w, http.StatusBadRequest, "invalid run_id")
		return
	}

	def, ok := s.readDefinition(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if runID != "" {
		ctx = troupe.WithRunID(ctx, runID)
	}
	run, err := s.Engine.Execute(ctx, def, dry)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errorInfos(err)})
		return
	}
	s.Logger.Info("Run finished", "run_id", run.ID, "dry", run.Dry, "status", run.Root.Status, "duration", run.Duration)
	w.Header().Set(RunIDHeader, run.ID)
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (*domain.Definition, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDefinitionSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("definition exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		s.writeError(w, http.StatusBadRequest, "failed to read body")
		s.Logger.Warn("Invalid request body", "err", err)
		return nil, false
	}

	def, err := troupe.Parse(data)
	if err != nil {
		var buildErr *compiler.BuildError
		status := http.StatusBadRequest
		if errors.As(err, &buildErr) {
			status = http.StatusUnprocessableEntity
		}
		s.writeJSON(w, status, map[string]any{"errors": errorInfos(err)})
		return nil, false
	}
	return def, true
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"errors": []ErrorInfo{{Message: message}}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}

func kindInfo(kind string, actor domain.Actor) KindInfo {
	_, composite := actor.(domain.Composite)
	return KindInfo{Kind: kind, Composite: composite, Options: actor.Schema()}
}

type located interface {
	Location() string
}

func errorInfos(err error) []ErrorInfo {
	errs := compiler.Errors(err)
	infos := make([]ErrorInfo, 0, len(errs))
	for _, e := range errs {
		info := ErrorInfo{Message: e.Error()}
		if l, ok := e.(located); ok {
			info.Location = l.Location()
		}
		infos = append(infos, info)
	}
	return infos
}
