package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cat-registry/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iamServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Header.Get("X-Api-Key") != "k" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var req verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		switch req.Token {
		case "admin-token":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "A1", UserName: "root", Role: "ADMIN"})
		case "user-token":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: "U1", Email: "ana@example.com", Role: "superuser"})
		case "anon-token":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestVerifier(t *testing.T, key string) *Verifier {
	t.Helper()
	c, err := NewClient(Config{BaseURL: iamServer(t).URL, APIKey: key})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_MapsRoles(t *testing.T) {
	v := newTestVerifier(t, "k")

	c, err := v.Verify(context.Background(), "admin-token")
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "A1", UserName: "root", Role: auth.RoleAdmin}, c)

	c, err = v.Verify(context.Background(), " user-token ")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, c.Role)
	assert.Equal(t, "ana@example.com", c.Email)
}

func TestVerify_Errors(t *testing.T) {
	v := newTestVerifier(t, "k")

	_, err := v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = v.Verify(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(context.Background(), "boom")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(context.Background(), "anon-token")
	assert.Error(t, err)

	bad := newTestVerifier(t, "wrong")
	_, err = bad.Verify(context.Background(), "admin-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://iam"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	var v *Verifier
	_, err = v.Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
