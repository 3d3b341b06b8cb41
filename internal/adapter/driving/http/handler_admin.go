package httphandler

import (
	"net"
	"net/http"
	"time"

	"github.com/chayanin/showcase/internal/application"
)

// Login authenticates the admin and sets the session cookie. The failure
// message is the same whichever credential was wrong.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	token, expiry, err := h.auth.AuthenticateAdmin(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	http.SetCookie(w, sessionCookie(r, token, expiry))
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Logout clears the session cookie. It always succeeds, authenticated or
// not; an already-copied token stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := sessionCookie(r, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// Session reports whether the request carries a valid admin credential. It
// consults the same gate the mutating routes use and has no side effects.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	_, err := h.auth.Authorize(r)
	writeJSON(w, http.StatusOK, SessionResponse{Admin: err == nil})
}

// sessionCookie builds the admin session cookie. Secure is dropped only for
// loopback hosts so local development over plain HTTP still works.
func sessionCookie(r *http.Request, token string, expiry time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     application.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isLoopbackHost(r.Host),
	}
}

func isLoopbackHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
