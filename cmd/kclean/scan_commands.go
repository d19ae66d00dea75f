package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/qr"
	"github.com/spec-kit/kclean/internal/scan"
)

// scanInput resolves the -code / -image pair every scan command shares. The
// image path goes through the QR reader so staff without a live camera can
// photograph the resident's screen instead.
func scanInput(code, imagePath string) (string, error) {
	if code != "" {
		return code, nil
	}
	if imagePath == "" {
		return "", fmt.Errorf("berikan -code atau -image")
	}
	return qr.DecodeImage(imagePath)
}

func (c *cli) cmdWeigh(args []string) error {
	fs := flag.NewFlagSet("weigh", flag.ContinueOnError)
	code := fs.String("code", "", "Kode profil warga")
	imagePath := fs.String("image", "", "File PNG berisi QR profil warga")
	category := fs.String("category", "", "Kategori sampah (Organik|Anorganik)")
	weight := fs.Float64("weight", 0, "Berat sampah dalam kg")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/petugas-timbangan"); err != nil {
		return err
	}

	raw, err := scanInput(*code, *imagePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	done := make(chan struct{})
	flow := scan.NewWeighingFlow(c.client, nil, c.cfg.Scan.SuccessDisplayDelay(), func() {
		close(done)
	}, c.logger)
	defer flow.Teardown()

	flow.Start(ctx)
	flow.Decode(ctx, raw)
	if flow.State() == scan.StateFailed {
		return fmt.Errorf("%s", flow.FailureInfo().Message)
	}

	resident := flow.Subject().Resident
	fmt.Printf("Warga: %s (%s), saldo %d poin\n", resident.Name, resident.PublicCode, resident.Points)

	trashCategory, err := domain.ParseTrashCategory(*category)
	if err != nil {
		trashCategory = domain.TrashCategory(*category)
	}
	if err := flow.Submit(ctx, scan.Payload{Category: trashCategory, WeightKg: *weight}); err != nil {
		return err
	}
	if flow.State() == scan.StateFailed {
		return fmt.Errorf("%s", flow.FailureInfo().Message)
	}

	fmt.Println(flow.SuccessMessage())
	<-done
	return nil
}

func (c *cli) cmdRedeem(args []string) error {
	fs := flag.NewFlagSet("redeem", flag.ContinueOnError)
	code := fs.String("code", "", "Kode penukaran voucher")
	imagePath := fs.String("image", "", "File PNG berisi QR voucher")
	yes := fs.Bool("yes", false, "Lewati konfirmasi")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/umkm-scan"); err != nil {
		return err
	}

	raw, err := scanInput(*code, *imagePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	done := make(chan struct{})
	flow := scan.NewRedemptionFlow(c.client, nil, c.cfg.Scan.SuccessDisplayDelay(), func() {
		close(done)
	}, c.logger)
	defer flow.Teardown()

	flow.Start(ctx)
	flow.Decode(ctx, raw)
	if flow.State() == scan.StateFailed {
		return fmt.Errorf("%s", flow.FailureInfo().Message)
	}

	claim := flow.Subject().Claim
	if claim.Voucher != nil {
		fmt.Printf("Voucher: %s, diskon %d%%, berlaku s/d %s\n",
			claim.Voucher.Name, claim.Voucher.DiscountPercent, claim.Voucher.ExpiresAt.Format("02 Jan 2006"))
	}
	if !*yes && !confirm("Gunakan voucher ini?") {
		flow.Cancel(ctx)
		fmt.Println("Dibatalkan.")
		return nil
	}

	if err := flow.Submit(ctx, scan.Payload{}); err != nil {
		return err
	}
	if flow.State() == scan.StateFailed {
		return fmt.Errorf("%s", flow.FailureInfo().Message)
	}

	fmt.Println(flow.SuccessMessage())
	<-done
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "ya" || answer == "yes"
}
