package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/festeja/eventos-api/internal/auth"
	"github.com/go-chi/chi/v5"
)

var errInvalidID = errors.New("invalid id")

// sanitizeString trims whitespace and strips angle brackets so stored text
// cannot smuggle markup back out.
func sanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

// parseIDParam reads a positive integer route parameter. Zero, negative and
// non-numeric values are all rejected the same way.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// currentUser resolves the request identity or answers 401 itself. Callers
// must return when ok is false.
func (app *application) currentUser(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Não autenticado")
		return auth.User{}, false
	}
	return user, true
}
