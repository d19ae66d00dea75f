package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 0, zap.NewNop())
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"id":"u1","role":"user"}}`)) //nolint:errcheck
	})
	client.SetTokenSource(func() string { return "tok-123" })

	_, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientLoginRejection(t *testing.T) {
	expiredCalls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Email atau password salah"}`)) //nolint:errcheck
	})
	client.SetSessionExpiredHandler(func() { expiredCalls++ })

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Equal(t, "Email atau password salah", UserMessage(err))

	// No token was attached, so a 401 is a credential problem, not expiry.
	require.Zero(t, expiredCalls)
}

func TestClientSessionExpiry(t *testing.T) {
	expiredCalls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthenticated."}`)) //nolint:errcheck
	})
	client.SetTokenSource(func() string { return "stale-token" })
	client.SetSessionExpiredHandler(func() { expiredCalls++ })

	_, err := client.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, 1, expiredCalls)
}

func TestClientNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"warga tidak ditemukan"}`)) //nolint:errcheck
	})

	_, err := client.Profile(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "warga tidak ditemukan", UserMessage(err))
}

func TestClientGenericFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`)) //nolint:errcheck
	})

	_, err := client.Vouchers(context.Background())
	require.Error(t, err)
	require.Equal(t, GenericFailureMessage, UserMessage(err))
}

func TestUserMessagePrefersBackendText(t *testing.T) {
	err := &Error{Status: 400, Message: "Poin tidak cukup"}
	require.Equal(t, "Poin tidak cukup", UserMessage(err))
	require.Equal(t, "Sesi berakhir. Silakan login kembali.", UserMessage(ErrSessionExpired))
	require.Empty(t, UserMessage(nil))
}
