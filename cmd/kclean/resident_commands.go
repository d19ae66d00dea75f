package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/poll"
	"github.com/spec-kit/kclean/internal/qr"
)

// dashboardData is one poll of the resident dashboard.
type dashboardData struct {
	points        int
	notifications []domain.Notification
}

func (c *cli) cmdDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "Perbarui otomatis sesuai interval polling")
	if err := fs.Parse(args); err != nil {
		return err
	}

	subject := c.session.Subject()
	if subject == nil {
		return fmt.Errorf("silakan login terlebih dahulu")
	}
	if err := c.requireRoute(subject.Role.HomePath()); err != nil {
		return err
	}

	switch subject.Role {
	case domain.RoleResident:
		return c.residentDashboard(*watch)
	case domain.RoleUMKM:
		return c.merchantDashboard()
	case domain.RoleAdmin:
		return c.cmdListUsers(nil)
	default:
		fmt.Printf("Dashboard %s: %s\n", subject.Role, subject.Name)
		return nil
	}
}

func (c *cli) residentDashboard(watch bool) error {
	ctx := context.Background()

	fetch := func(ctx context.Context) (any, error) {
		points, err := c.client.UserPoints(ctx)
		if err != nil {
			return nil, err
		}
		notifications, err := c.client.Notifications(ctx)
		if err != nil {
			return nil, err
		}
		return dashboardData{points: points, notifications: notifications}, nil
	}
	apply := func(result any) {
		data := result.(dashboardData)
		fmt.Printf("Poin eco: %d\n", data.points)
		for _, n := range data.notifications {
			fmt.Printf("  [%s] %s: %s\n", n.CreatedAt.Format("02 Jan 15:04"), n.Title, n.Body)
		}
	}

	if !watch {
		result, err := fetch(ctx)
		if err != nil {
			return err
		}
		apply(result)
		return nil
	}

	poller := &poll.Poller{
		Interval: c.cfg.Poll.Interval(),
		Fetch:    fetch,
		Apply:    apply,
		Logger:   c.logger,
	}
	poller.Start(ctx)
	defer poller.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}

func (c *cli) merchantDashboard() error {
	vouchers, err := c.client.MerchantVouchers(context.Background())
	if err != nil {
		return err
	}
	for _, v := range vouchers {
		fmt.Printf("%s  %s  diskon %d%%  %d poin  s/d %s\n",
			v.ID, v.Name, v.DiscountPercent, v.PricePoints, v.ExpiresAt.Format("02 Jan 2006"))
	}
	return nil
}

func (c *cli) cmdVouchers(_ []string) error {
	if err := c.requireRoute("/tukar-poin"); err != nil {
		return err
	}
	vouchers, err := c.client.Vouchers(context.Background())
	if err != nil {
		return err
	}
	for _, v := range vouchers {
		fmt.Printf("%s  %s (%s)  diskon %d%%  %d poin\n",
			v.ID, v.Name, v.MerchantName, v.DiscountPercent, v.PricePoints)
	}
	return nil
}

func (c *cli) cmdBuy(args []string) error {
	fs := flag.NewFlagSet("buy", flag.ContinueOnError)
	id := fs.String("id", "", "ID voucher dari katalog")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/tukar-poin"); err != nil {
		return err
	}

	claim, err := c.client.PurchaseVoucher(context.Background(), *id)
	if err != nil {
		return err
	}
	fmt.Println("Voucher dibeli. Kode penukaran:", claim.Code)
	return nil
}

func (c *cli) cmdMyVouchers(_ []string) error {
	if err := c.requireRoute("/voucher-ku"); err != nil {
		return err
	}
	claims, err := c.client.MyVouchers(context.Background())
	if err != nil {
		return err
	}
	for _, claim := range claims {
		name := claim.VoucherID
		if claim.Voucher != nil {
			name = claim.Voucher.Name
		}
		fmt.Printf("%s  %s  %s\n", claim.Code, name, strings.ToLower(string(claim.Status)))
	}
	return nil
}

func (c *cli) cmdProfileQR(args []string) error {
	fs := flag.NewFlagSet("qr", flag.ContinueOnError)
	out := fs.String("out", "profile.png", "File PNG tujuan")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/qr-profile"); err != nil {
		return err
	}

	subject := c.session.Subject()
	content := profileQRContent(subject.PublicCode)
	if err := qr.EncodePNG(content, *out, 512); err != nil {
		return err
	}
	fmt.Println("QR profil tersimpan di", *out)
	return nil
}

func (c *cli) cmdVoucherQR(args []string) error {
	fs := flag.NewFlagSet("voucher-qr", flag.ContinueOnError)
	code := fs.String("code", "", "Kode penukaran voucher")
	out := fs.String("out", "voucher.png", "File PNG tujuan")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/voucher-ku"); err != nil {
		return err
	}
	if *code == "" {
		return fmt.Errorf("kode voucher wajib diisi")
	}

	if err := qr.EncodePNG(*code, *out, 512); err != nil {
		return err
	}
	fmt.Println("QR voucher tersimpan di", *out)
	return nil
}

// profileQRContent builds the payload embedded in a resident's profile QR;
// the staff scan screen extracts the code after the transaction marker.
func profileQRContent(publicCode string) string {
	return "https://kclean.id/trash-transaction/" + publicCode
}
