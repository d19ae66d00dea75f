package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/spec-kit/kclean/internal/api/dto"
)

func (c *cli) cmdCreateStaff(args []string) error {
	req, err := parseCreateUser("create-petugas", args)
	if err != nil {
		return err
	}
	if err := c.requireRoute("/create-petugas"); err != nil {
		return err
	}

	account, err := c.client.CreateStaff(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Printf("Petugas dibuat: %s <%s>\n", account.Name, account.Email)
	return nil
}

func (c *cli) cmdCreateMerchant(args []string) error {
	req, err := parseCreateUser("create-umkm", args)
	if err != nil {
		return err
	}
	if err := c.requireRoute("/create-umkm"); err != nil {
		return err
	}

	account, err := c.client.CreateMerchant(context.Background(), req)
	if err != nil {
		return err
	}
	fmt.Printf("UMKM dibuat: %s <%s>\n", account.Name, account.Email)
	return nil
}

func parseCreateUser(name string, args []string) (dto.CreateUserRequest, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	accountName := fs.String("name", "", "Nama akun")
	email := fs.String("email", "", "Email akun")
	password := fs.String("password", "", "Password awal")
	if err := fs.Parse(args); err != nil {
		return dto.CreateUserRequest{}, err
	}
	if *accountName == "" || *email == "" || *password == "" {
		return dto.CreateUserRequest{}, fmt.Errorf("nama, email, dan password wajib diisi")
	}
	return dto.CreateUserRequest{Name: *accountName, Email: *email, Password: *password}, nil
}

func (c *cli) cmdListUsers(_ []string) error {
	if err := c.requireRoute("/admin-dashboard"); err != nil {
		return err
	}
	accounts, err := c.client.ListUsers(context.Background())
	if err != nil {
		return err
	}
	for _, account := range accounts {
		fmt.Printf("%s  %-8s  %s <%s>  %d poin\n",
			account.ID, account.Role, account.Name, account.Email, account.Points)
	}
	return nil
}

func (c *cli) cmdUpdateUser(args []string) error {
	fs := flag.NewFlagSet("update-user", flag.ContinueOnError)
	id := fs.String("id", "", "ID akun")
	name := fs.String("name", "", "Nama baru")
	email := fs.String("email", "", "Email baru")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/edit-data-user"); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id wajib diisi")
	}

	var req dto.UpdateUserRequest
	if *name != "" {
		req.Name = name
	}
	if *email != "" {
		req.Email = email
	}

	account, err := c.client.UpdateUser(context.Background(), *id, req)
	if err != nil {
		return err
	}
	fmt.Printf("Akun diperbarui: %s <%s>\n", account.Name, account.Email)
	return nil
}

func (c *cli) cmdDeleteUser(args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ContinueOnError)
	id := fs.String("id", "", "ID akun")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/edit-data-user"); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id wajib diisi")
	}

	if err := c.client.DeleteUser(context.Background(), *id); err != nil {
		return err
	}
	fmt.Println("Akun dihapus.")
	return nil
}

func (c *cli) cmdCreateVoucher(args []string) error {
	fs := flag.NewFlagSet("create-voucher", flag.ContinueOnError)
	name := fs.String("name", "", "Nama voucher")
	description := fs.String("description", "", "Deskripsi")
	discount := fs.Int("discount", 0, "Persen diskon")
	price := fs.Int("price", 0, "Harga dalam poin")
	expires := fs.String("expires", "", "Tanggal kedaluwarsa (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.requireRoute("/create-voucher"); err != nil {
		return err
	}

	expiresAt, err := time.Parse("2006-01-02", *expires)
	if err != nil {
		return fmt.Errorf("format tanggal tidak valid, gunakan YYYY-MM-DD")
	}

	voucher, err := c.client.CreateVoucher(context.Background(), dto.CreateVoucherRequest{
		Name:            *name,
		Description:     *description,
		DiscountPercent: *discount,
		PricePoints:     *price,
		ExpiresAt:       expiresAt,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Voucher dibuat: %s (diskon %d%%, %d poin)\n",
		voucher.Name, voucher.DiscountPercent, voucher.PricePoints)
	return nil
}
