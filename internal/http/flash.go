package httpserver

import (
	"encoding/base64"
	"net/http"
)

// flashCookie carries a one-shot message to the next rendered page. The
// value is base64-encoded so arbitrary text survives cookie transport.
const flashCookie = "flash"

func encodeFlash(message string) string {
	return base64.URLEncoding.EncodeToString([]byte(message))
}

func decodeFlash(value string) string {
	decoded, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// setFlash queues a message for the next page render.
func (s *Server) setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    encodeFlash(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
}

// popFlash returns the pending message, if any, and clears it so it renders
// exactly once.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return decodeFlash(cookie.Value)
}
