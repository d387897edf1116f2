package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sla.service/internal/session"
	"sla.service/pkg/logger"
)

// RequestID makes sure every request and response carries an X-Request-ID and
// that the request logger includes it along with the trace ids.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
			r.Header.Set("X-Request-ID", reqID)
		}
		w.Header().Set("X-Request-ID", reqID)

		ctx := logger.EnrichContextWithLogger(r.Context(), "request_id", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Session verifies the bearer token and stores the resulting session on the
// request context. Requests for a workspace other than the session's are
// rejected.
func Session(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			s, err := session.Parse(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if ws := mux.Vars(r)["workspaceId"]; ws != "" && ws != s.WorkspaceID {
				http.Error(w, "workspace not permitted", http.StatusForbidden)
				return
			}

			trace.SpanFromContext(r.Context()).SetAttributes(
				attribute.String("app.workspaceId", s.WorkspaceID),
				attribute.String("app.userId", s.UserID),
			)
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}
