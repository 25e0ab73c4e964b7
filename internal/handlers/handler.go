package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/jalali"
	"github.com/csg33k/approval-form/internal/ports"
	"github.com/csg33k/approval-form/internal/submission"
)

const (
	// EndpointPath is the submission endpoint.
	EndpointPath = "/api/send-email"
	// LegacyEndpointPath keeps existing form deployments working.
	LegacyEndpointPath = "/.netlify/functions/send-email"
)

// Submitter dispatches a validated submission and returns its reference id.
type Submitter interface {
	Submit(ctx context.Context, sub domain.Submission) (string, error)
}

// Calendar supplies the month shown on the form.
type Calendar interface {
	Current() jalali.Date
}

// Deps are the collaborators a Handler is built from.
type Deps struct {
	Directory ports.SupervisorDirectory
	Submitter Submitter
	Client    ports.SubmissionClient
	Calendar  Calendar
	Log       *zap.Logger
	// ExposeErrorDetails puts the internal error text in 500 responses
	// instead of the reference id.
	ExposeErrorDetails bool
	Now                func() time.Time
}

type Handler struct {
	Log *zap.Logger

	dir          ports.SupervisorDirectory
	decoder      *submission.Decoder
	submitter    Submitter
	client       ports.SubmissionClient
	calendar     Calendar
	exposeErrors bool
	now          func() time.Time
}

func New(d Deps) *Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Handler{
		Log:          d.Log,
		dir:          d.Directory,
		decoder:      submission.NewDecoder(d.Log),
		submitter:    d.Submitter,
		client:       d.Client,
		calendar:     d.Calendar,
		exposeErrors: d.ExposeErrorDetails,
		now:          d.Now,
	}
}

// Routes mounts the form, the submission endpoint and the health check.
// An empty allowedOrigins list lets any origin call the endpoint.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Route("/form", func(r chi.Router) {
		r.Get("/supervisor", h.selectSupervisor)
		r.Get("/supervisee", h.selectSupervisee)
		r.Get("/decision", h.setDecision)
		r.Get("/email", h.setEmail)
		r.Get("/month", h.month)
		r.Post("/submit", h.submitForm)
	})
	r.Get("/healthz", h.health)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		// All methods are routed here so non-POST gets the JSON 405.
		r.HandleFunc(EndpointPath, h.sendEmail)
		r.HandleFunc(LegacyEndpointPath, h.sendEmail)
	})
	return r
}

// requestLogger logs one line per request once it completes.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			h.Log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}

type healthResponse struct {
	Status      string `json:"status"`
	Supervisors int    `json:"supervisors"`
	Error       string `json:"error,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.ListSupervisors(r.Context())
	if err != nil {
		h.Log.Error("health-check: directory unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "error", Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Supervisors: len(list)})
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
