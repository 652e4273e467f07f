// Package api - Thin HTTP layer over the simulation service
// The API is ONLY responsible for: input decoding, service orchestration,
// output serialization. It never prices anything itself.
package api

import (
	stderrors "errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"roaming-cost/core/simulation"
	"roaming-cost/internal/errors"
	"roaming-cost/internal/metrics"
	"roaming-cost/internal/reporting"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

type route struct {
	method string
	handle fasthttp.RequestHandler
}

// Server is the API server
type Server struct {
	service   *simulation.Service
	collector *metrics.Collector
	logger    *zap.Logger
	version   string
	routes    map[string]route
	metrics   fasthttp.RequestHandler
}

// Options configures a server
type Options struct {
	// Version is reported by /health and /version
	Version string

	// Collector records request and simulation metrics; nil disables them
	Collector *metrics.Collector

	// Logger receives access and error logs; nil disables logging
	Logger *zap.Logger
}

// NewServer creates a new API server
func NewServer(service *simulation.Service, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		service:   service,
		collector: opts.Collector,
		logger:    logger,
		version:   opts.Version,
		routes:    make(map[string]route),
	}
	if s.collector != nil {
		s.metrics = fasthttpadaptor.NewFastHTTPHandler(s.collector.Handler())
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.routes["/simulate"] = route{fasthttp.MethodPost, s.handleSimulate}
	s.routes["/health"] = route{fasthttp.MethodGet, s.handleHealth}

	// Reference data
	s.routes["/catalog/countries"] = route{fasthttp.MethodGet, s.handleCountries}
	s.routes["/catalog/bundles"] = route{fasthttp.MethodGet, s.handleBundles}
	s.routes["/catalog/rates"] = route{fasthttp.MethodGet, s.handleRates}
	s.routes["/catalog/presets"] = route{fasthttp.MethodGet, s.handlePresets}
	s.routes["/catalog/subscribers"] = route{fasthttp.MethodGet, s.handleSubscribers}

	// Supporting endpoints
	s.routes["/version"] = route{fasthttp.MethodGet, s.handleVersion}
	if s.metrics != nil {
		s.routes["/metrics"] = route{fasthttp.MethodGet, s.metrics}
	}
}

// Handler returns the fasthttp request handler
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.serve
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string, readTimeout, writeTimeout time.Duration, maxBody int) error {
	srv := &fasthttp.Server{
		Handler:            s.serve,
		Name:               "roaming-cost",
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		MaxRequestBodySize: maxBody,
	}
	s.logger.Info("api listening", zap.String("addr", addr))
	return srv.ListenAndServe(addr)
}

func (s *Server) serve(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	id := string(ctx.Request.Header.Peek(RequestIDHeader))
	if id == "" {
		id = uuid.NewString()
	}
	ctx.SetUserValue(requestIDKey, id)
	ctx.Response.Header.Set(RequestIDHeader, id)

	label := path
	defer func() {
		if rec := recover(); rec != nil {
			err := reporting.RecoverError(rec, map[string]string{"route": label, "request_id": id})
			s.logger.Error("panic while handling request",
				zap.String("request_id", id),
				zap.String("path", path),
				zap.Error(err))
			s.writeError(ctx, errors.Internal("unexpected failure", err))
		}

		status := ctx.Response.StatusCode()
		s.collector.ObserveRequest(label, status, time.Since(start))
		s.logger.Debug("request handled",
			zap.String("request_id", id),
			zap.String("method", string(ctx.Method())),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)))
	}()

	r, ok := s.routes[path]
	if !ok {
		label = "unmatched"
		s.writeError(ctx, errors.NotFound("route", path))
		return
	}
	if string(ctx.Method()) != r.method {
		ctx.Response.Header.Set(fasthttp.HeaderAllow, r.method)
		s.writeStatus(ctx, fasthttp.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use "+r.method)
		return
	}
	r.handle(ctx)
}

type contextKey string

const requestIDKey contextKey = "request_id"

func requestID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(requestIDKey).(string)
	return id
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, data interface{}, status int) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		ctx.Error(`{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`, fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (s *Server) writeStatus(ctx *fasthttp.RequestCtx, status int, code, message string) {
	s.writeJSON(ctx, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: requestID(ctx),
	}}, status)
}

// writeError maps a domain error onto a status code. Internal details are
// logged and reported, never sent to the client.
func (s *Server) writeError(ctx *fasthttp.RequestCtx, err error) {
	errType := errors.TypeOf(err)
	status := statusFor(errType)

	message := err.Error()
	var de *errors.Error
	if stderrors.As(err, &de) {
		message = de.Message
		if de.Cause != nil {
			message += ": " + de.Cause.Error()
		}
	}
	if status == fasthttp.StatusInternalServerError {
		s.logger.Error("request failed",
			append(errors.Fields(err), zap.String("request_id", requestID(ctx)))...)
		reporting.CaptureError(err, map[string]string{"request_id": requestID(ctx)})
		message = "internal error"
	}

	s.writeStatus(ctx, status, string(errType), message)
}

func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInput, errors.TypeNotSupported:
		return fasthttp.StatusBadRequest
	case errors.TypeNotFound:
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}
