package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/pkg/gatekeeper"
	"github.com/shoplite/catalog-system/pkg/token"
)

func TestGateway_ForwardsTokenUnchanged(t *testing.T) {
	var gotAuth string
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer downstream.Close()

	codec := token.NewCodec("secret", time.Hour)
	gk := gatekeeper.New(codec)

	e, err := New(gk, []Route{
		{Prefix: "/v1/products", Target: downstream.URL, Requirement: gatekeeper.Authenticated()},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}

	raw, _, err := codec.Encode("alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from downstream, got %d", rec.Code)
	}
	if gotAuth != "Bearer "+raw {
		t.Fatalf("token modified in flight: got %q", gotAuth)
	}
}

func TestGateway_BlocksBeforeForwarding(t *testing.T) {
	hit := false
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
	}))
	defer downstream.Close()

	gk := gatekeeper.New(token.NewCodec("secret", time.Hour))
	e, err := New(gk, []Route{
		{Prefix: "/v1/products", Target: downstream.URL, Requirement: gatekeeper.Authenticated()},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 at the edge, got %d", rec.Code)
	}
	if hit {
		t.Fatalf("denied request must never reach the downstream service")
	}
}

func TestGateway_PublicPrefixPassesThrough(t *testing.T) {
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer downstream.Close()

	gk := gatekeeper.New(token.NewCodec("secret", time.Hour))
	e, err := New(gk, []Route{
		{Prefix: "/auth", Target: downstream.URL, Requirement: gatekeeper.None()},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("gateway: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGateway_RejectsBadTarget(t *testing.T) {
	gk := gatekeeper.New(token.NewCodec("secret", time.Hour))
	if _, err := New(gk, []Route{{Prefix: "/x", Target: "://bad", Requirement: gatekeeper.None()}}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for malformed target URL")
	}
}
