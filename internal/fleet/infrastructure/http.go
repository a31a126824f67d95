package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/config"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-fleet/pkg/infrastructure"
)

const requestTimeout = 10 * time.Second

// FleetService é o conjunto de operações expostas pela API HTTP.
type FleetService interface {
	Login(ctx context.Context, username, password string, role domain.Role) (*auth.Session, error)
	SearchRoutes(filter application.RouteFilter) []domain.Route
	FindRoute(id string) (domain.Route, bool)
	FindBus(id string) (domain.Bus, bool)
	FindDriver(id string) (domain.Driver, bool)
	Schedules(ctx context.Context, filter application.FindSchedulesData) ([]domain.Schedule, error)
	AddSchedule(ctx context.Context, s domain.Schedule) error
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error
	RemoveSchedule(ctx context.Context, id string) error
	RequestDayOff(ctx context.Context, request domain.DayOffRequest) error
	DayOffRequests(ctx context.Context) ([]domain.DayOffRequest, error)
}

type claimsKey struct{}

type FleetHTTPHandler struct {
	service FleetService
	tokens  *auth.TokenIssuer
	logger  pkgApp.AppLogger
}

func NewFleetHTTPHandler(service FleetService, tokens *auth.TokenIssuer, logger pkgApp.AppLogger) *FleetHTTPHandler {
	return &FleetHTTPHandler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// NewRouter cria o roteador com request id, CORS e log de acesso.
func NewRouter(cfg config.HTTPConfig, logger pkgApp.AppLogger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(accessLog(logger))
	return router
}

func (h *FleetHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HandleHealth)
	router.Post("/login", h.HandleLogin)
	router.Get("/routes", h.HandleSearchRoutes)
	router.Get("/routes/{routeID}", h.HandleFindRoute)

	router.Group(func(r chi.Router) {
		r.Use(h.authenticate)
		r.Get("/buses/{busID}", h.HandleFindBus)
		r.Get("/drivers/{driverID}", h.HandleFindDriver)

		r.With(h.requireRole(domain.RoleAdmin, domain.RoleDriver)).Get("/schedules", h.HandleListSchedules)

		r.Group(func(r chi.Router) {
			r.Use(h.requireRole(domain.RoleAdmin))
			r.Post("/schedules", h.HandleAddSchedule)
			r.Put("/schedules/{scheduleID}", h.HandleUpdateSchedule)
			r.Delete("/schedules/{scheduleID}", h.HandleRemoveSchedule)
			r.Get("/dayoff", h.HandleListDayOff)
		})

		r.With(h.requireRole(domain.RoleDriver)).Post("/dayoff", h.HandleRequestDayOff)
	})
}

func (h *FleetHTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *FleetHTTPHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	role := domain.ParseRole(req.Role)
	session, err := h.service.Login(r.Context(), req.Username, req.Password, role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(session)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "role": role.String()})
}

func (h *FleetHTTPHandler) HandleSearchRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	routes := h.service.SearchRoutes(application.RouteFilter{
		Origin:      q.Get("origin"),
		Destination: q.Get("destination"),
		Stop:        q.Get("stop"),
	})
	if routes == nil {
		routes = []domain.Route{}
	}
	writeJSON(w, http.StatusOK, routes)
}

func (h *FleetHTTPHandler) HandleFindRoute(w http.ResponseWriter, r *http.Request) {
	route, ok := h.service.FindRoute(chi.URLParam(r, "routeID"))
	if !ok {
		h.writeError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (h *FleetHTTPHandler) HandleFindBus(w http.ResponseWriter, r *http.Request) {
	bus, ok := h.service.FindBus(chi.URLParam(r, "busID"))
	if !ok {
		h.writeError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, bus)
}

func (h *FleetHTTPHandler) HandleFindDriver(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "driverID")
	claims := claimsFrom(r.Context())
	if claims.UserRole() == domain.RoleDriver && claims.UserID != driverID {
		handleError(w, "Forbidden", http.StatusForbidden)
		return
	}

	driver, ok := h.service.FindDriver(driverID)
	if !ok {
		h.writeError(w, r, domain.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (h *FleetHTTPHandler) HandleListSchedules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := application.FindSchedulesData{
		DriverID: q.Get("driver"),
		BusID:    q.Get("bus"),
		RouteID:  q.Get("route"),
		Date:     q.Get("date"),
	}
	if claims := claimsFrom(r.Context()); claims.UserRole() == domain.RoleDriver {
		filter.DriverID = claims.UserID
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	schedules, err := h.service.Schedules(ctx, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (h *FleetHTTPHandler) HandleAddSchedule(w http.ResponseWriter, r *http.Request) {
	var s domain.Schedule
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.AddSchedule(ctx, s); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Schedule added", "data": s})
}

func (h *FleetHTTPHandler) HandleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var s domain.Schedule
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "scheduleID")
	if s.ID == "" {
		s.ID = id
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.UpdateSchedule(ctx, id, s); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Schedule updated", "data": s})
}

func (h *FleetHTTPHandler) HandleRemoveSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.service.RemoveSchedule(ctx, chi.URLParam(r, "scheduleID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dayOffRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (h *FleetHTTPHandler) HandleRequestDayOff(w http.ResponseWriter, r *http.Request) {
	var req dayOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	request := domain.DayOffRequest{
		DriverID: claimsFrom(r.Context()).UserID,
		Date:     req.Date,
		Reason:   req.Reason,
	}
	if err := h.service.RequestDayOff(r.Context(), request); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (h *FleetHTTPHandler) HandleListDayOff(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.DayOffRequests(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *FleetHTTPHandler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			handleError(w, "Missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := h.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			pkgApp.LogDebug(r.Context(), h.logger, "token rejected", map[string]interface{}{"reason": err.Error()})
			handleError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func (h *FleetHTTPHandler) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := claimsFrom(r.Context()).UserRole()
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			handleError(w, "You don't have "+roles[0].String()+" privileges", http.StatusForbidden)
		})
	}
}

func claimsFrom(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return claims
	}
	return &auth.Claims{}
}

// writeError traduz os erros de domínio em status HTTP.
func (h *FleetHTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		mismatch *auth.RoleMismatchError
		status   int
	)
	switch {
	case errors.Is(err, domain.ErrDuplicateID):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case domain.IsRejection(err):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &mismatch):
		status = http.StatusForbidden
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrIncorrectPassword), errors.Is(err, auth.ErrEmptyCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	default:
		pkgApp.LogError(r.Context(), h.logger, "request failed", err, map[string]interface{}{
			"path": r.URL.Path,
		})
		handleError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	handleError(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := pkgInfra.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		id, _ := pkgInfra.RequestIDFrom(ctx)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(logger pkgApp.AppLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			pkgApp.LogInfo(r.Context(), logger, "http request", map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
