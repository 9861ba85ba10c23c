// Package server exposes formatting, schema inference and checking over
// HTTP for the jdec serve command.
package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	j "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/jsonvalue"
)

// DefaultMaxBodyBytes bounds request bodies when Config.MaxBodyBytes is 0.
const DefaultMaxBodyBytes = 8 << 20

// Config configures the handler.
type Config struct {
	// Parse is applied to every JSON body.
	Parse        jsonvalue.ParseOpt
	MaxBodyBytes int64
	Logger       *slog.Logger
	// Registry receives the server metrics. A nil Registry uses a fresh
	// one, so metrics stay private to the handler.
	Registry *prometheus.Registry
}

type server struct {
	cfg     Config
	log     *slog.Logger
	metrics *metrics
}

// New returns the HTTP handler.
//
//	POST /v1/format   body: document           -> canonical JSON
//	POST /v1/schema   body: sample             -> inferred JSON Schema
//	POST /v1/check    body: {sample, document} -> {"ok": bool, "error"?: string}
//	GET  /healthz
//	GET  /metrics
func New(cfg Config) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	s := &server{cfg: cfg, log: cfg.Logger, metrics: newMetrics(cfg.Registry)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/format", s.format)
		r.Post("/schema", s.schema)
		r.Post("/check", s.check)
	})
	return r
}

// instrument records request counts and latencies by route pattern.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.observe(route, status, time.Since(start))
		s.log.Debug("request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}

// body reads and parses the request body as JSON.
func (s *server) body(w http.ResponseWriter, r *http.Request) (jsonvalue.Value, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		s.fail(w, http.StatusBadRequest, err)
		return nil, false
	}
	v, err := jsonvalue.Parse(data, s.cfg.Parse)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return nil, false
	}
	return v, true
}

func (s *server) format(w http.ResponseWriter, r *http.Request) {
	v, ok := s.body(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if indent := r.URL.Query().Get("indent"); indent != "" {
		_, _ = io.WriteString(w, jsonvalue.Indent(v, indent)+"\n")
		return
	}
	_, _ = io.WriteString(w, jsonvalue.Render(v)+"\n")
}

func (s *server) schema(w http.ResponseWriter, r *http.Request) {
	v, ok := s.body(w, r)
	if !ok {
		return
	}
	sch := jdec.InferSchema(v)
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		s.writeJSON(w, http.StatusOK, sch)
	case "yaml":
		out, err := sch.YAML()
		if err != nil {
			s.fail(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(out)
	case "openapi":
		s.writeJSON(w, http.StatusOK, sch.OpenAPI())
	default:
		s.fail(w, http.StatusBadRequest, errors.New("unknown format "+format))
	}
}

type checkRequest struct {
	Sample   jsonvalue.Value
	Document jsonvalue.Value
	OpenAPI  bool
}

var checkRequestDecoder = jdec.Map3(
	jdec.Field("sample", jdec.Value()),
	jdec.Field("document", jdec.Value()),
	jdec.OptionalFieldOr("openapi", jdec.Bool(), false),
	func(sample, doc jsonvalue.Value, openapi bool) checkRequest {
		return checkRequest{Sample: sample, Document: doc, OpenAPI: openapi}
	},
)

type checkResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *server) check(w http.ResponseWriter, r *http.Request) {
	v, ok := s.body(w, r)
	if !ok {
		return
	}
	req, err := checkRequestDecoder.Decode(v)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	if res := jdec.Infer(req.Sample).Apply(req.Document); res.IsErr() {
		s.metrics.checks.WithLabelValues("mismatch").Inc()
		s.writeJSON(w, http.StatusUnprocessableEntity, checkResponse{Error: res.Message()})
		return
	}
	if req.OpenAPI {
		if err := jdec.InferSchema(req.Sample).Validate(req.Document); err != nil {
			s.metrics.checks.WithLabelValues("mismatch").Inc()
			s.writeJSON(w, http.StatusUnprocessableEntity, checkResponse{Error: err.Error()})
			return
		}
	}
	s.metrics.checks.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, checkResponse{OK: true})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) fail(w http.ResponseWriter, status int, err error) {
	s.log.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := j.Marshal(v)
	if err != nil {
		s.log.Error("encode response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(out, '\n'))
}
