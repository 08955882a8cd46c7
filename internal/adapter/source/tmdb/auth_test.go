package tmdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
)

func newTestFlow(t *testing.T, secret string) (*AuthFlow, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/authentication" || r.URL.Query().Get("api_key") != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"success":true}`)
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	flow := NewAuthFlow(Config{BaseURL: srv.URL}, nil)
	flow.out = &out
	flow.readSecret = func() ([]byte, error) { return []byte(secret), nil }
	return flow, &out
}

func TestAuthFlowAcceptsValidKey(t *testing.T) {
	flow, out := newTestFlow(t, "  good-key \n")

	result, err := flow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.APIKey != "good-key" {
		t.Errorf("APIKey = %q, want trimmed key", result.APIKey)
	}
	if !strings.Contains(out.String(), "Authentication successful!") {
		t.Errorf("output = %q", out.String())
	}
}

func TestAuthFlowRejectsBadKey(t *testing.T) {
	flow, _ := newTestFlow(t, "bad-key")

	if _, err := flow.Run(context.Background()); !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("Run error = %v, want ErrAuthFailed", err)
	}
}

func TestAuthFlowRequiresKey(t *testing.T) {
	flow, _ := newTestFlow(t, "   ")

	if _, err := flow.Run(context.Background()); err == nil {
		t.Error("Run with empty key succeeded")
	}
}
