package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"myshop/internal/catalog"
	"myshop/internal/domain"
	"myshop/internal/middleware"
	"myshop/internal/simulation"
)

// App bundles the dependencies shared by the HTTP handlers.
type App struct {
	Sim        *simulation.Service
	Directory  *catalog.Directory
	Accounts   *catalog.Accounts
	Assets     domain.AssetRepository
	Logger     zerolog.Logger
	JWTSecret  string
	SessionTTL time.Duration
	Secure     bool
	Now        func() time.Time
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.errorWithDetails(w, code, errCode, message, nil)
}

func (a *App) errorWithDetails(w http.ResponseWriter, code int, errCode, message string, details any) {
	a.json(w, code, map[string]errorPayload{"error": {Code: errCode, Message: message, Details: details}})
}

// internal logs err and answers with a generic 500.
func (a *App) internal(w http.ResponseWriter, r *http.Request, err error, msg string) {
	a.logger(r).Error().Err(err).Msg(msg)
	a.error(w, http.StatusInternalServerError, "internal", "Something went wrong.")
}

func (a *App) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// decodeObject reads a JSON object body. An empty body decodes as an empty
// object; anything that is not an object is rejected.
func decodeObject(r *http.Request) (map[string]json.RawMessage, error) {
	out := map[string]json.RawMessage{}
	if r.Body == nil {
		return out, nil
	}
	err := json.NewDecoder(r.Body).Decode(&out)
	if errors.Is(err, io.EOF) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, domain.ErrInvalidPayload
	}
	if out == nil {
		out = map[string]json.RawMessage{}
	}
	return out, nil
}

// stringField returns the string at key. Missing keys, nulls and non-string
// values yield ok == false.
func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
