package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoleHomePath(t *testing.T) {
	cases := map[Role]string{
		RoleAdmin:    "/admin-dashboard",
		RolePetugas:  "/petugas-dashboard",
		RoleUMKM:     "/umkm-dashboard",
		RoleResident: "/dashboard",
		Role("ghost"): "/",
	}
	for role, want := range cases {
		require.Equal(t, want, role.HomePath(), "role %s", role)
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("petugas")
	require.NoError(t, err)
	require.Equal(t, RolePetugas, role)

	_, err = ParseRole("superuser")
	require.Error(t, err)
}

func TestPointsForWeight(t *testing.T) {
	cases := []struct {
		kg   float64
		want int
	}{
		{0.1, 1},
		{1, 10},
		{5, 50},
		{2.34, 23},
		{2.35, 24},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PointsForWeight(tc.kg), "weight %.2f", tc.kg)
	}
}

func TestParseTrashCategory(t *testing.T) {
	for _, valid := range []string{"Organik", "Anorganik"} {
		category, err := ParseTrashCategory(valid)
		require.NoError(t, err)
		require.True(t, category.Valid())
	}

	_, err := ParseTrashCategory("Plastik")
	require.Error(t, err)
	require.False(t, TrashCategory("Plastik").Valid())
}

func TestVoucherRedeemable(t *testing.T) {
	now := time.Now()
	voucher := &Voucher{ExpiresAt: now.Add(24 * time.Hour)}

	cases := []struct {
		name  string
		claim UserVoucher
		want  bool
	}{
		{"active and unexpired", UserVoucher{Status: VoucherStatusActive, Voucher: voucher}, true},
		{"already used", UserVoucher{Status: VoucherStatusUsed, Voucher: voucher}, false},
		{"expired status", UserVoucher{Status: VoucherStatusExpired, Voucher: voucher}, false},
		{"past expiry date", UserVoucher{Status: VoucherStatusActive, Voucher: &Voucher{ExpiresAt: now.Add(-time.Hour)}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.claim.Redeemable(now))
		})
	}
}
