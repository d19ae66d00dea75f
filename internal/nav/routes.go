package nav

import "github.com/spec-kit/kclean/internal/domain"

// Route declares one screen in the navigation surface.
type Route struct {
	Path   string
	Title  string
	Public bool
	// Roles lists who may view the screen; empty with Public false means
	// any authenticated role.
	Roles []domain.Role
}

// PublicRoot is where unknown paths land.
const PublicRoot = "/"

// Routes is the fixed path table. Role-to-screen policy lives here and
// nowhere else.
var Routes = []Route{
	{Path: "/", Title: "Onboarding", Public: true},
	{Path: "/login", Title: "Login", Public: true},
	{Path: "/register", Title: "Daftar", Public: true},

	{Path: "/email-verify", Title: "Verifikasi Email"},

	{Path: "/admin-dashboard", Title: "Dashboard Admin", Roles: []domain.Role{domain.RoleAdmin}},
	{Path: "/create-petugas", Title: "Tambah Petugas", Roles: []domain.Role{domain.RoleAdmin}},
	{Path: "/create-umkm", Title: "Tambah UMKM", Roles: []domain.Role{domain.RoleAdmin}},
	{Path: "/edit-data-petugas", Title: "Edit Petugas", Roles: []domain.Role{domain.RoleAdmin}},
	{Path: "/edit-data-umkm", Title: "Edit UMKM", Roles: []domain.Role{domain.RoleAdmin}},
	{Path: "/edit-data-user", Title: "Edit Warga", Roles: []domain.Role{domain.RoleAdmin}},

	{Path: "/petugas-dashboard", Title: "Dashboard Petugas", Roles: []domain.Role{domain.RolePetugas}},
	{Path: "/petugas-profile", Title: "Profil Petugas", Roles: []domain.Role{domain.RolePetugas}},
	{Path: "/petugas-scan", Title: "Scan Warga", Roles: []domain.Role{domain.RolePetugas}},
	{Path: "/petugas-timbangan", Title: "Timbang Sampah", Roles: []domain.Role{domain.RolePetugas}},

	{Path: "/umkm-dashboard", Title: "Dashboard UMKM", Roles: []domain.Role{domain.RoleUMKM}},
	{Path: "/create-voucher", Title: "Buat Voucher", Roles: []domain.Role{domain.RoleUMKM}},
	{Path: "/list-voucher", Title: "Daftar Voucher", Roles: []domain.Role{domain.RoleUMKM}},
	{Path: "/profile-umkm", Title: "Profil UMKM", Roles: []domain.Role{domain.RoleUMKM}},
	{Path: "/umkm-scan", Title: "Scan Voucher", Roles: []domain.Role{domain.RoleUMKM}},

	{Path: "/dashboard", Title: "Dashboard Warga", Roles: []domain.Role{domain.RoleResident}},
	{Path: "/profile", Title: "Profil Warga", Roles: []domain.Role{domain.RoleResident}},
	{Path: "/tukar-poin", Title: "Tukar Poin", Roles: []domain.Role{domain.RoleResident}},
	{Path: "/voucher-ku", Title: "Voucher Ku", Roles: []domain.Role{domain.RoleResident}},
	{Path: "/qr-profile", Title: "QR Profil", Roles: []domain.Role{domain.RoleResident}},
}

// Lookup finds a route by path.
func Lookup(path string) (Route, bool) {
	for _, route := range Routes {
		if route.Path == path {
			return route, true
		}
	}
	return Route{}, false
}
