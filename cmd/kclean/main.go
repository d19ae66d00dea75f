// Command kclean is the terminal client for the K-CLEAN waste-collection
// loyalty program. It talks to the backend REST API, keeps the session in a
// local state file, and drives the role-specific flows: resident dashboard
// and voucher purchases, field-staff weighing, merchant redemption, and
// admin account management.
package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/config"
	"github.com/spec-kit/kclean/internal/nav"
	"github.com/spec-kit/kclean/internal/observability"
	"github.com/spec-kit/kclean/internal/session"
)

// cli bundles the dependencies every subcommand needs.
type cli struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	session *session.Manager
	guard   *nav.Guard
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	store, err := session.NewFileStore(cfg.State.Dir)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}

	client := api.NewClient(cfg.Client.BaseURL, cfg.Client.RequestTimeout(), logger)
	manager := session.NewManager(client, store, logger)
	manager.Restore()

	app := &cli{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		session: manager,
		guard:   nav.NewGuard(manager),
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", api.UserMessage(err))
		os.Exit(1)
	}
}

func (c *cli) run(command string, args []string) error {
	switch command {
	case "login":
		return c.cmdLogin(args)
	case "register":
		return c.cmdRegister(args)
	case "logout":
		return c.cmdLogout(args)
	case "whoami":
		return c.cmdWhoami(args)
	case "dashboard":
		return c.cmdDashboard(args)
	case "vouchers":
		return c.cmdVouchers(args)
	case "buy":
		return c.cmdBuy(args)
	case "my-vouchers":
		return c.cmdMyVouchers(args)
	case "qr":
		return c.cmdProfileQR(args)
	case "voucher-qr":
		return c.cmdVoucherQR(args)
	case "weigh":
		return c.cmdWeigh(args)
	case "redeem":
		return c.cmdRedeem(args)
	case "create-voucher":
		return c.cmdCreateVoucher(args)
	case "create-petugas":
		return c.cmdCreateStaff(args)
	case "create-umkm":
		return c.cmdCreateMerchant(args)
	case "users":
		return c.cmdListUsers(args)
	case "update-user":
		return c.cmdUpdateUser(args)
	case "delete-user":
		return c.cmdDeleteUser(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireRoute runs the navigation guard for the screen a command belongs
// to, printing where the SPA would have redirected.
func (c *cli) requireRoute(path string) error {
	decision := c.guard.Check(path)
	switch decision.Kind {
	case session.DecisionAllow:
		return nil
	case session.DecisionRedirect:
		if decision.RedirectPath == session.LoginPath {
			return fmt.Errorf("silakan login terlebih dahulu")
		}
		return fmt.Errorf("akses ditolak, dialihkan ke %s", decision.RedirectPath)
	default:
		return fmt.Errorf("sesi belum siap")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `kclean <command> [flags]

Akun:
  login           -email -password
  register        -name -email -password -confirm
  logout
  whoami

Warga:
  dashboard       [-watch]
  vouchers
  buy             -id <voucher-id>
  my-vouchers
  qr              [-out profile.png]
  voucher-qr      -code <claim-code> [-out voucher.png]

Petugas:
  weigh           -code <id> | -image <qr.png>  -category Organik|Anorganik -weight <kg>

UMKM:
  redeem          -code <id> | -image <qr.png>  [-yes]
  create-voucher  -name -description -discount -price -expires YYYY-MM-DD

Admin:
  create-petugas  -name -email -password
  create-umkm     -name -email -password
  users
  update-user     -id [-name] [-email]
  delete-user     -id`)
}
