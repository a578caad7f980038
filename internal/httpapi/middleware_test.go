package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EugenioPantua19/designxcel-shopstate/internal/domain"
)

func TestSessionMiddleware_MintsSessionID(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sessionIDFromContext(r.Context())
	})

	recorder := httptest.NewRecorder()
	SessionMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if got == "" {
		t.Fatal("expected a session id to be minted")
	}
	if recorder.Header().Get("X-Session-ID") != got {
		t.Error("expected the minted session id to be echoed back")
	}
}

func TestSessionMiddleware_KeepsClientSessionID(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sessionIDFromContext(r.Context())
	})

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Session-ID", "sess-42")
	SessionMiddleware(next).ServeHTTP(httptest.NewRecorder(), request)

	if got != "sess-42" {
		t.Errorf("expected 'sess-42', got '%s'", got)
	}
}

func TestIdentityMiddleware_DefaultsToGuest(t *testing.T) {
	var got domain.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = identityFromContext(r.Context())
	})

	IdentityMiddleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got != domain.IdentityGuest {
		t.Errorf("expected guest identity, got '%s'", got)
	}
}

func TestIdentityMiddleware_ReadsUserHeader(t *testing.T) {
	var got domain.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = identityFromContext(r.Context())
	})

	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-User-ID", "user42")
	IdentityMiddleware(next).ServeHTTP(httptest.NewRecorder(), request)

	if got != domain.Identity("user42") {
		t.Errorf("expected 'user42', got '%s'", got)
	}
}
