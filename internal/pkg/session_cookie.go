package pkg

import (
	"net/http"
	"time"
)

const SessionCookieName = "user_session"

// SessionCookie builds the cookie that carries the session id. A ttl <= 0
// leaves Expires unset, so the browser keeps it for the browsing session.
func SessionCookie(id string, ttl time.Duration, now time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if ttl > 0 {
		cookie.Expires = now.Add(ttl)
	}

	return cookie
}

// ExpiredSessionCookie tells the browser to drop the session cookie.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
