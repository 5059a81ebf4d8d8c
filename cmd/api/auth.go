package main

import (
	"errors"
	"net/http"

	"github.com/festeja/eventos-api/internal/auth"
	"github.com/festeja/eventos-api/internal/response"
)

const sessionMaxAge = 60 * 24 * 60 * 60 // 60 days

func (app *application) handleOAuthRedirectURL(w http.ResponseWriter, r *http.Request) {
	redirectURL, err := app.authClient.OAuthRedirectURL(r.Context(), "google")
	if err != nil {
		app.appLogger.Error("Auth", "Failed to fetch redirect url: %v", err)
		writeJSONError(w, http.StatusBadGateway, "Provedor de identidade indisponível")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": redirectURL})
}

func (app *application) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := readJSON(w, r, &payload); err != nil || payload.Code == "" {
		writeJSONError(w, http.StatusBadRequest, "Código de autorização ausente")
		return
	}

	token, err := app.authClient.ExchangeCode(r.Context(), payload.Code)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			writeJSONError(w, http.StatusUnauthorized, "Código de autorização inválido")
			return
		}
		app.appLogger.Error("Auth", "Code exchange failed: %v", err)
		writeJSONError(w, http.StatusBadGateway, "Provedor de identidade indisponível")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	writeJSON(w, http.StatusOK, response.APIResponse[any]{Success: true})
}

func (app *application) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := app.currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil && cookie.Value != "" {
		if err := app.authClient.DeleteSession(r.Context(), cookie.Value); err != nil {
			// Session revocation is best effort; the cookie is cleared anyway.
			app.appLogger.Warn("Auth", "Failed to delete session upstream: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	writeJSON(w, http.StatusOK, response.APIResponse[any]{Success: true})
}
