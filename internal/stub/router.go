package stub

import "github.com/spec-kit/kclean/internal/domain"

// registerRoutes wires the REST contract the client consumes, rooted at
// /api like the production backend.
func (a *App) registerRoutes() {
	api := a.fiber.Group("/api")

	api.Post("/login", a.handleLogin)
	api.Post("/register", a.handleRegister)

	authed := api.Group("", a.requireAuth)
	authed.Post("/logout", a.handleLogout)
	authed.Get("/user", a.handleCurrentUser)
	authed.Get("/user-data", a.handleCurrentUser)

	resident := authed.Group("", requireRole(domain.RoleResident))
	resident.Get("/user-points", a.handleUserPoints)
	resident.Get("/user-voucher", a.handleMyVouchers)
	resident.Get("/vouchers", a.handleCatalog)
	resident.Post("/voucher-purchase/:id", a.handlePurchaseVoucher)
	resident.Get("/notifications", a.handleNotifications)

	staff := authed.Group("", requireRole(domain.RolePetugas))
	staff.Get("/profile/:code", a.handleProfile)
	staff.Post("/trash-transaction/:code", a.handleDeposit)

	merchant := authed.Group("", requireRole(domain.RoleUMKM))
	merchant.Get("/voucher", a.handleMerchantVouchers)
	merchant.Post("/voucher", a.handleCreateVoucher)
	merchant.Get("/voucher-check/:code", a.handleVoucherCheck)
	merchant.Post("/voucher-redemption/:code", a.handleRedeemVoucher)

	admin := authed.Group("", requireRole(domain.RoleAdmin))
	admin.Post("/createuser/petugas", a.handleCreateStaff)
	admin.Post("/createuser/umkm", a.handleCreateMerchant)
	admin.Get("/users", a.handleListUsers)
	admin.Put("/users/:id", a.handleUpdateUser)
	admin.Delete("/users/:id", a.handleDeleteUser)
}
