package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/application/service"
	"github.com/TemirB/kitchen-board/internal/board"
	"github.com/TemirB/kitchen-board/internal/domain"
	"github.com/TemirB/kitchen-board/internal/observability"
	"github.com/TemirB/kitchen-board/internal/ordering"
	"github.com/TemirB/kitchen-board/internal/workflow"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type BoardService interface {
	ListActive(ctx context.Context) ([]domain.Order, error)
	GetOrderWithStats(ctx context.Context, uid string) (*domain.Order, service.LookupStats, error)
	Actions(ctx context.Context, uid string) ([]workflow.Action, error)
	Transition(ctx context.Context, uid string, target domain.Status) (*domain.Order, service.WriteStats, error)
	Drop(ctx context.Context, uid string, ev board.DropEvent) (*domain.Order, bool, error)
	Categories(ctx context.Context) ([]string, error)
	ReorderCategories(ctx context.Context, keys []string) ([]string, error)
	ResetCategories(ctx context.Context) ([]string, error)
	Columns() []domain.BoardColumn
	SetMaxColumns(n int) ([]domain.BoardColumn, error)
	LoadView(key, route string, deps ...any) service.ViewState
	SaveView(key, route string, value json.RawMessage, deps ...any)
}

type Server struct {
	service BoardService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(service BoardService, logger *zap.Logger, metrics observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	s := &Server{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(ObserveHTTP(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", s.listOrders)
		r.Route("/{uid}", func(r chi.Router) {
			r.Get("/", s.getOrder)
			r.Get("/actions", s.getActions)
			r.Post("/transition", s.transition)
			r.Post("/drop", s.drop)
		})
	})

	r.Get("/categories", s.getCategories)
	r.Put("/categories", s.reorderCategories)
	r.Post("/categories/reset", s.resetCategories)

	r.Get("/board/columns", s.getColumns)
	r.Put("/board/columns", s.setColumns)

	r.Get("/views/{key}", s.getView)
	r.Put("/views/{key}", s.putView)

	s.router = r
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	orders, err := s.service.ListActive(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.AppendServerTiming(w, "list", float64(time.Since(start).Microseconds())/1000.0, "")
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	order, st, err := s.service.GetOrderWithStats(r.Context(), uid)
	if err != nil {
		s.writeError(w, err)
		return
	}

	observability.AppendServerTiming(w, "cache", st.CacheMs, "")
	observability.AppendServerTiming(w, "db", st.DBMs, "")
	observability.AppendServerTiming(w, "source", 0, string(st.Source))
	w.Header().Set("X-Source", string(st.Source))
	observability.SetIfPos(w, "X-Cache-Time", st.CacheMs)
	observability.SetIfPos(w, "X-DB-Time", st.DBMs)

	writeJSON(w, http.StatusOK, order)
}

func (s *Server) getActions(w http.ResponseWriter, r *http.Request) {
	actions, err := s.service.Actions(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

type transitionRequest struct {
	Status domain.Status `json:"status"`
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown status"})
		return
	}

	order, st, err := s.service.Transition(r.Context(), chi.URLParam(r, "uid"), req.Status)
	if err != nil && !errors.Is(err, workflow.ErrNotify) {
		s.writeError(w, err)
		return
	}
	observability.AppendServerTiming(w, "notify", st.NotifyMs, "")
	observability.AppendServerTiming(w, "db_write", st.DBWriteMs, "")
	writeJSON(w, syncStatus(w, err), order)
}

type dropResponse struct {
	Order   *domain.Order `json:"order"`
	Changed bool          `json:"changed"`
}

func (s *Server) drop(w http.ResponseWriter, r *http.Request) {
	var ev board.DropEvent
	if !s.decode(w, r, &ev) {
		return
	}

	order, changed, err := s.service.Drop(r.Context(), chi.URLParam(r, "uid"), ev)
	if err != nil && !errors.Is(err, board.ErrNotify) {
		s.writeError(w, err)
		return
	}
	writeJSON(w, syncStatus(w, err), dropResponse{Order: order, Changed: changed})
}

type categoriesBody struct {
	Order []string `json:"order"`
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	keys, err := s.service.Categories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesBody{Order: keys})
}

func (s *Server) reorderCategories(w http.ResponseWriter, r *http.Request) {
	var req categoriesBody
	if !s.decode(w, r, &req) {
		return
	}
	keys, err := s.service.ReorderCategories(r.Context(), req.Order)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesBody{Order: keys})
}

func (s *Server) resetCategories(w http.ResponseWriter, r *http.Request) {
	keys, err := s.service.ResetCategories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesBody{Order: keys})
}

type columnsBody struct {
	MaxColumns int                  `json:"max_columns"`
	Columns    []domain.BoardColumn `json:"columns,omitempty"`
}

func (s *Server) getColumns(w http.ResponseWriter, _ *http.Request) {
	cols := s.service.Columns()
	writeJSON(w, http.StatusOK, columnsBody{MaxColumns: len(cols), Columns: cols})
}

func (s *Server) setColumns(w http.ResponseWriter, r *http.Request) {
	var req columnsBody
	if !s.decode(w, r, &req) {
		return
	}
	cols, err := s.service.SetMaxColumns(req.MaxColumns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, columnsBody{MaxColumns: len(cols), Columns: cols})
}

type viewRequest struct {
	Route string          `json:"route"`
	Value json.RawMessage `json:"value"`
	Deps  []string        `json:"deps"`
}

func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := s.service.LoadView(chi.URLParam(r, "key"), q.Get("route"), splitDeps(q.Get("deps"))...)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) putView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !s.decode(w, r, &req) {
		return
	}
	deps := make([]any, 0, len(req.Deps))
	for _, d := range req.Deps {
		deps = append(deps, d)
	}
	s.service.SaveView(chi.URLParam(r, "key"), req.Route, req.Value, deps...)
	w.WriteHeader(http.StatusNoContent)
}

func splitDeps(raw string) []any {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		out = append(out, p)
	}
	return out
}

// syncStatus reports a local change the order store has not acknowledged
// yet as 202.
func syncStatus(w http.ResponseWriter, err error) int {
	if err == nil {
		return http.StatusOK
	}
	w.Header().Set("X-Store-Sync", "pending")
	return http.StatusAccepted
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSON(w, http.StatusUnsupportedMediaType, errorBody{Error: "Content-Type must be application/json"})
		return false
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		s.logger.Warn("Error while decoding JSON",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad json"})
		return false
	}
	return true
}

type errorBody struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidData),
		errors.Is(err, board.ErrSourceMismatch),
		errors.Is(err, board.ErrInvalidMaxColumns),
		errors.Is(err, ordering.ErrNotPermutation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
		msg = "Service error"
	}
	writeJSON(w, code, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
