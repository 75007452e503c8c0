package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/reconcile"
)

type AuthClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// managerRoles may view and edit timesheets of other employees.
var managerRoles = []domain.Role{domain.RoleManager, domain.RoleHRManager, domain.RoleAdmin}

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), RequestIDCtxKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		requestID, _ := r.Context().Value(RequestIDCtxKey).(string)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "request_id", requestID, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // multiline stacks turn into soup under slog
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.errorResponse(w, r, "not signed in")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			h.errorResponse(w, r, "invalid authorization header")
			return
		}

		claims := &AuthClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid token")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// targetEmployee resolves which employee the request is about. By default
// the caller; the employee_id query parameter switches to a different
// employee for callers holding a manager role.
func (h *Handler) targetEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		employeeID := r.Context().Value(SubCtxKey).(string)

		if target := r.URL.Query().Get("employee_id"); target != "" && target != employeeID {
			role := domain.Role(r.Context().Value(RoleCtxKey).(string))
			if !slices.Contains(managerRoles, role) {
				h.errorResponse(w, r, "insufficient permissions to access another employee's data")
				return
			}
			employeeID = target
		}

		ctx := context.WithValue(r.Context(), EmployeeIDCtxKey, employeeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// week validates the weekStart URL parameter and derives the week end.
func (h *Handler) week(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weekStart := reconcile.NormalizeDateKey(chi.URLParam(r, "weekStart"))
		if weekStart == "" {
			h.errorResponse(w, r, "invalid week start date")
			return
		}

		weekEnd, err := reconcile.WeekEnd(weekStart)
		if err != nil {
			h.errorResponse(w, r, "invalid week start date")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, WeekStartCtxKey, weekStart)
		ctx = context.WithValue(ctx, WeekEndCtxKey, weekEnd)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
