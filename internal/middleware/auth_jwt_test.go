package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSignAndVerifyJWT(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	token, err := SignJWT(testSecret, TokenClaims{Sub: "user_1", Provider: "google", IssuedAt: now.Unix(), Exp: now.Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}

	claims, err := VerifyJWT(testSecret, token, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("VerifyJWT() error: %v", err)
	}
	if claims.Sub != "user_1" || claims.Provider != "google" {
		t.Fatalf("VerifyJWT() claims = %+v", claims)
	}

	if _, err := VerifyJWT("other-secret", token, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyJWT(wrong secret) error = %v, want ErrInvalidToken", err)
	}
	if _, err := VerifyJWT(testSecret, token, now.Add(2*time.Hour)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("VerifyJWT(expired) error = %v, want ErrTokenExpired", err)
	}
	if _, err := VerifyJWT(testSecret, "not-a-token", now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("VerifyJWT(garbage) error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthJWTAndRequireUser(t *testing.T) {
	token, err := SignJWT(testSecret, TokenClaims{Sub: "user_1", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignJWT() error: %v", err)
	}
	handler := AuthJWT(testSecret)(RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UserIDFromContext(r.Context())))
	})))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bearer token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			wantStatus: http.StatusOK,
			wantBody:   "user_1",
		},
		{
			name:       "session cookie",
			setup:      func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token}) },
			wantStatus: http.StatusOK,
			wantBody:   "user_1",
		},
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "tampered token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token+"x") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if rec.Body.String() != tc.wantBody {
					t.Fatalf("body = %q, want %q", rec.Body.String(), tc.wantBody)
				}
				return
			}
			var body struct {
				Error errorBody `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error.Code != "unauthenticated" {
				t.Fatalf("error code = %q, want %q", body.Error.Code, "unauthenticated")
			}
		})
	}
}
