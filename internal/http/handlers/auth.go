package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myshop/internal/catalog"
	"myshop/internal/domain"
	"myshop/internal/middleware"
)

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: catalog.DisplayName(u)}
}

type loginResponse struct {
	User     userDTO `json:"user"`
	Redirect string  `json:"redirect"`
	Token    string  `json:"token"`
}

// Login signs in as the demo account of the {provider} social provider.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	body, err := decodeObject(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "invalid_payload", "Request body must be a JSON object.")
		return
	}
	user, err := a.Accounts.Login(r.Context(), provider)
	if errors.Is(err, catalog.ErrUnsupportedProvider) {
		a.error(w, http.StatusBadRequest, "unsupported_provider", "Login with "+provider+" is not available.")
		return
	}
	if err != nil {
		a.internal(w, r, err, "login failed")
		return
	}
	a.Directory.EnsureUser(r.Context(), user.ID)

	now := a.now()
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      user.ID,
		Provider: provider,
		Locale:   middleware.LocaleFromContext(r.Context()),
		IssuedAt: now.Unix(),
		Exp:      now.Add(a.SessionTTL).Unix(),
	})
	if err != nil {
		a.internal(w, r, err, "sign session token failed")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(a.SessionTTL),
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	redirect, _ := stringField(body, "redirectUrl")
	if redirect == "" {
		redirect = "/"
	}
	a.logger(r).Info().Str("user_id", user.ID).Str("provider", provider).Msg("user signed in")
	a.json(w, http.StatusOK, loginResponse{User: toUserDTO(user), Redirect: redirect, Token: token})
}

// Logout clears the session cookie. Bearer tokens stay valid until they expire.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	a.json(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session reports the signed-in user and their default store.
func (a *App) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := a.sessionUser(w, r, "No active session for this request.")
	if !ok {
		return
	}
	a.Directory.EnsureUser(r.Context(), user.ID)
	a.json(w, http.StatusOK, map[string]any{
		"user":    toUserDTO(user),
		"storeId": a.Directory.DefaultStoreID(r.Context(), user.ID),
	})
}

// sessionUser resolves the account behind the request, writing a 401 when
// there is none.
func (a *App) sessionUser(w http.ResponseWriter, r *http.Request, message string) (domain.User, bool) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthenticated", message)
		return domain.User{}, false
	}
	user, err := a.Accounts.Get(r.Context(), userID)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthenticated", message)
		return domain.User{}, false
	}
	return user, true
}
