package stub

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/config"
	"github.com/spec-kit/kclean/internal/domain"
)

func startStub(t *testing.T) string {
	t.Helper()

	cfg := config.StubConfig{
		SQLitePath:    filepath.Join(t.TempDir(), "stub.db"),
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    4,
		AdminEmail:    "admin@kclean.local",
		AdminPassword: "admin123",
	}
	app, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go app.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String() + "/api"
}

// loggedInClient returns a client authenticated as the given account.
func loggedInClient(t *testing.T, baseURL, email, password string) *api.Client {
	t.Helper()
	client := api.NewClient(baseURL, 0, zap.NewNop())
	resp, err := client.Login(context.Background(), email, password)
	require.NoError(t, err)
	token := resp.Token
	client.SetTokenSource(func() string { return token })
	return client
}

func TestStubAuth(t *testing.T) {
	baseURL := startStub(t)
	ctx := context.Background()

	t.Run("wrong password rejected", func(t *testing.T) {
		client := api.NewClient(baseURL, 0, zap.NewNop())
		_, err := client.Login(ctx, "admin@kclean.local", "salah")
		require.ErrorIs(t, err, api.ErrInvalidCredentials)
		require.Equal(t, "Email atau password salah", api.UserMessage(err))
	})

	t.Run("register then fetch profile", func(t *testing.T) {
		client := api.NewClient(baseURL, 0, zap.NewNop())
		resp, err := client.Register(ctx, dto.RegisterRequest{
			Name: "Budi", Email: "budi@kclean.id", Password: "rahasia123", PasswordConfirmation: "rahasia123",
		})
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, domain.RoleResident, resp.User.Role)
		require.NotEmpty(t, resp.User.PublicCode)

		token := resp.Token
		client.SetTokenSource(func() string { return token })
		me, err := client.CurrentUser(ctx)
		require.NoError(t, err)
		require.Equal(t, "budi@kclean.id", me.Email)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		client := api.NewClient(baseURL, 0, zap.NewNop())
		_, err := client.Register(ctx, dto.RegisterRequest{
			Name: "Budi2", Email: "budi@kclean.id", Password: "rahasia123", PasswordConfirmation: "rahasia123",
		})
		require.Error(t, err)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		client := loggedInClient(t, baseURL, "admin@kclean.local", "admin123")
		require.NoError(t, client.Logout(ctx))

		_, err := client.CurrentUser(ctx)
		require.ErrorIs(t, err, api.ErrSessionExpired)
	})
}

func TestStubRoleEnforcement(t *testing.T) {
	baseURL := startStub(t)
	ctx := context.Background()

	resident := api.NewClient(baseURL, 0, zap.NewNop())
	resp, err := resident.Register(ctx, dto.RegisterRequest{
		Name: "Siti", Email: "siti@kclean.id", Password: "rahasia123", PasswordConfirmation: "rahasia123",
	})
	require.NoError(t, err)
	token := resp.Token
	resident.SetTokenSource(func() string { return token })

	// A resident may not reach admin, staff, or merchant endpoints.
	_, err = resident.ListUsers(ctx)
	require.Error(t, err)
	_, err = resident.Profile(ctx, resp.User.PublicCode)
	require.Error(t, err)
	_, err = resident.MerchantVouchers(ctx)
	require.Error(t, err)

	// Anonymous requests to authed endpoints fail.
	anonymous := api.NewClient(baseURL, 0, zap.NewNop())
	_, err = anonymous.UserPoints(ctx)
	require.ErrorIs(t, err, api.ErrInvalidCredentials)
}

func TestStubFullLifecycle(t *testing.T) {
	baseURL := startStub(t)
	ctx := context.Background()

	admin := loggedInClient(t, baseURL, "admin@kclean.local", "admin123")

	staffAccount, err := admin.CreateStaff(ctx, dto.CreateUserRequest{
		Name: "Pak Joko", Email: "joko@kclean.id", Password: "petugas123",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RolePetugas, staffAccount.Role)

	merchantAccount, err := admin.CreateMerchant(ctx, dto.CreateUserRequest{
		Name: "Warung Hijau", Email: "warung@kclean.id", Password: "umkm123",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleUMKM, merchantAccount.Role)

	resident := api.NewClient(baseURL, 0, zap.NewNop())
	registered, err := resident.Register(ctx, dto.RegisterRequest{
		Name: "Budi", Email: "budi@kclean.id", Password: "rahasia123", PasswordConfirmation: "rahasia123",
	})
	require.NoError(t, err)
	residentToken := registered.Token
	resident.SetTokenSource(func() string { return residentToken })
	residentCode := registered.User.PublicCode

	staff := loggedInClient(t, baseURL, "joko@kclean.id", "petugas123")
	merchant := loggedInClient(t, baseURL, "warung@kclean.id", "umkm123")

	t.Run("staff weighs a drop-off", func(t *testing.T) {
		profile, err := staff.Profile(ctx, residentCode)
		require.NoError(t, err)
		require.Equal(t, "Budi", profile.Name)

		deposit, err := staff.SubmitDeposit(ctx, residentCode, dto.DepositRequest{
			TrashType: "Organik", TrashWeight: 5,
		})
		require.NoError(t, err)
		require.Equal(t, "Point terkirim", deposit.Message)
		require.Equal(t, 50, deposit.Points)

		points, err := resident.UserPoints(ctx)
		require.NoError(t, err)
		require.Equal(t, 50, points)
	})

	t.Run("weighing rejects bad input", func(t *testing.T) {
		_, err := staff.SubmitDeposit(ctx, residentCode, dto.DepositRequest{
			TrashType: "Organik", TrashWeight: 0,
		})
		require.Error(t, err)

		_, err = staff.SubmitDeposit(ctx, residentCode, dto.DepositRequest{
			TrashType: "Plastik", TrashWeight: 2,
		})
		require.Error(t, err)

		_, err = staff.Profile(ctx, "NO-SUCH-CODE")
		require.ErrorIs(t, err, api.ErrNotFound)
	})

	var claimCode string

	t.Run("resident purchases a voucher", func(t *testing.T) {
		voucher, err := merchant.CreateVoucher(ctx, dto.CreateVoucherRequest{
			Name: "Diskon Sayur", Description: "Potongan belanja sayur",
			DiscountPercent: 10, PricePoints: 30,
			ExpiresAt: time.Now().Add(48 * time.Hour),
		})
		require.NoError(t, err)

		catalog, err := resident.Vouchers(ctx)
		require.NoError(t, err)
		require.Len(t, catalog, 1)
		require.Equal(t, "Warung Hijau", catalog[0].MerchantName)

		claim, err := resident.PurchaseVoucher(ctx, voucher.ID)
		require.NoError(t, err)
		require.Equal(t, domain.VoucherStatusActive, claim.Status)
		require.NotEmpty(t, claim.Code)
		claimCode = claim.Code

		points, err := resident.UserPoints(ctx)
		require.NoError(t, err)
		require.Equal(t, 20, points)

		mine, err := resident.MyVouchers(ctx)
		require.NoError(t, err)
		require.Len(t, mine, 1)
	})

	t.Run("purchase fails without enough points", func(t *testing.T) {
		expensive, err := merchant.CreateVoucher(ctx, dto.CreateVoucherRequest{
			Name: "Diskon Besar", DiscountPercent: 50, PricePoints: 1000,
			ExpiresAt: time.Now().Add(48 * time.Hour),
		})
		require.NoError(t, err)

		_, err = resident.PurchaseVoucher(ctx, expensive.ID)
		require.Error(t, err)
		require.Equal(t, "Poin tidak cukup", api.UserMessage(err))

		// Balance untouched by the failed purchase.
		points, err := resident.UserPoints(ctx)
		require.NoError(t, err)
		require.Equal(t, 20, points)
	})

	t.Run("merchant redeems the claim once", func(t *testing.T) {
		claim, err := merchant.VoucherCheck(ctx, claimCode)
		require.NoError(t, err)
		require.Equal(t, domain.VoucherStatusActive, claim.Status)
		require.NotNil(t, claim.Voucher)
		require.Equal(t, "Diskon Sayur", claim.Voucher.Name)

		resp, err := merchant.RedeemVoucher(ctx, claimCode)
		require.NoError(t, err)
		require.NotEmpty(t, resp.Message)

		_, err = merchant.RedeemVoucher(ctx, claimCode)
		require.Error(t, err)
		require.Equal(t, "Voucher sudah digunakan", api.UserMessage(err))

		_, err = merchant.VoucherCheck(ctx, "UNKNOWN-CODE")
		require.Error(t, err)
	})

	t.Run("point movements produce notifications", func(t *testing.T) {
		notifications, err := resident.Notifications(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, notifications)

		titles := make(map[string]bool)
		for _, n := range notifications {
			titles[n.Title] = true
		}
		require.True(t, titles["Poin masuk"])
		require.True(t, titles["Voucher dibeli"])
	})

	t.Run("admin manages accounts", func(t *testing.T) {
		accounts, err := admin.ListUsers(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(accounts), 4)

		newName := "Pak Joko Santoso"
		updated, err := admin.UpdateUser(ctx, staffAccount.ID, dto.UpdateUserRequest{Name: &newName})
		require.NoError(t, err)
		require.Equal(t, newName, updated.Name)

		throwaway, err := admin.CreateStaff(ctx, dto.CreateUserRequest{
			Name: "Sementara", Email: "temp@kclean.id", Password: "temp1234",
		})
		require.NoError(t, err)
		require.NoError(t, admin.DeleteUser(ctx, throwaway.ID))

		_, err = admin.UpdateUser(ctx, throwaway.ID, dto.UpdateUserRequest{Name: &newName})
		require.Error(t, err)
	})
}
