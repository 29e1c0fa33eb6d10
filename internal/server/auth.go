package server

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

var (
	errNoSession      = errors.New("no valid session")
	errNoAdminSession = errors.New("no valid admin session")
)

// Players authenticate with the token returned by POST /api/games.
func bearerToken(r *http.Request) (string, error) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return "", errNoSession
	}
	return token, nil
}

// Admins authenticate with a cookie that lives as long as the stored session.
const (
	adminCookieName = "admin_session"
	adminSessionTTL = 7 * 24 * time.Hour
)

type adminSession struct {
	AdminID string
	Email   string
}

func adminFromRequest(r *http.Request, admin AdminStore) (adminSession, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return adminSession{}, errNoAdminSession
	}
	return admin.AdminFromSession(r.Context(), cookie.Value)
}

func setAdminCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(adminSessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAdminCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
