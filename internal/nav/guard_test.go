package nav

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/session"
)

func managerWithRole(t *testing.T, role domain.Role) *session.Manager {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"token": "tok",
			"user":  domain.Subject{ID: "u1", Name: "Tester", Role: role},
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)
	client := api.NewClient(server.URL, 0, zap.NewNop())
	manager := session.NewManager(client, store, zap.NewNop())
	manager.Restore()
	_, err = manager.Login(context.Background(), "t@kclean.id", "x")
	require.NoError(t, err)
	return manager
}

func anonymousManager(t *testing.T) *session.Manager {
	t.Helper()
	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)
	client := api.NewClient("http://127.0.0.1:1", 0, zap.NewNop())
	manager := session.NewManager(client, store, zap.NewNop())
	manager.Restore()
	return manager
}

func TestGuardPublicPaths(t *testing.T) {
	guard := NewGuard(anonymousManager(t))

	for _, path := range []string{"/", "/login", "/register"} {
		require.Equal(t, session.DecisionAllow, guard.Check(path).Kind, "path %s", path)
	}
}

func TestGuardUnknownPathRedirectsToRoot(t *testing.T) {
	guard := NewGuard(managerWithRole(t, domain.RoleResident))

	decision := guard.Check("/no-such-screen")
	require.Equal(t, session.DecisionRedirect, decision.Kind)
	require.Equal(t, PublicRoot, decision.RedirectPath)
}

func TestGuardAnonymousRedirectsToLogin(t *testing.T) {
	guard := NewGuard(anonymousManager(t))

	for _, path := range []string{"/dashboard", "/admin-dashboard", "/petugas-scan", "/email-verify"} {
		decision := guard.Check(path)
		require.Equal(t, session.DecisionRedirect, decision.Kind, "path %s", path)
		require.Equal(t, session.LoginPath, decision.RedirectPath, "path %s", path)
	}
}

func TestGuardRoleAccess(t *testing.T) {
	cases := []struct {
		role     domain.Role
		allowed  []string
		redirect string
		denied   []string
	}{
		{
			role:     domain.RoleResident,
			allowed:  []string{"/dashboard", "/tukar-poin", "/voucher-ku", "/qr-profile", "/email-verify"},
			redirect: "/dashboard",
			denied:   []string{"/admin-dashboard", "/petugas-timbangan", "/umkm-scan"},
		},
		{
			role:     domain.RolePetugas,
			allowed:  []string{"/petugas-dashboard", "/petugas-scan", "/petugas-timbangan"},
			redirect: "/petugas-dashboard",
			denied:   []string{"/dashboard", "/create-voucher"},
		},
		{
			role:     domain.RoleUMKM,
			allowed:  []string{"/umkm-dashboard", "/create-voucher", "/umkm-scan"},
			redirect: "/umkm-dashboard",
			denied:   []string{"/admin-dashboard", "/dashboard"},
		},
		{
			role:     domain.RoleAdmin,
			allowed:  []string{"/admin-dashboard", "/create-petugas", "/create-umkm", "/edit-data-user"},
			redirect: "/admin-dashboard",
			denied:   []string{"/dashboard", "/petugas-scan"},
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			guard := NewGuard(managerWithRole(t, tc.role))

			for _, path := range tc.allowed {
				require.Equal(t, session.DecisionAllow, guard.Check(path).Kind, "path %s", path)
			}
			for _, path := range tc.denied {
				decision := guard.Check(path)
				require.Equal(t, session.DecisionRedirect, decision.Kind, "path %s", path)
				require.Equal(t, tc.redirect, decision.RedirectPath, "path %s", path)
			}
		})
	}
}
