package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

type ctxKey int

const (
	ctxKeyToken ctxKey = iota
	ctxKeyAdmin
)

// sessionMiddleware rejects requests without a known Bearer token and puts
// the token in the request context.
func sessionMiddleware(logger *slog.Logger, store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			if _, err := store.Session(r.Context(), token); err != nil {
				if !errors.Is(err, ErrNotFound) {
					logger.Error("loading session", "error", err)
					writeError(w, http.StatusInternalServerError, "internal error")
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminAuthMiddleware requires a live admin_session cookie.
func adminAuthMiddleware(logger *slog.Logger, admin AdminStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := adminFromRequest(r, admin)
			if errors.Is(err, errNoAdminSession) {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err != nil {
				logger.Error("loading admin session", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) string {
	return r.Context().Value(ctxKeyToken).(string)
}

func adminFrom(r *http.Request) adminSession {
	return r.Context().Value(ctxKeyAdmin).(adminSession)
}
