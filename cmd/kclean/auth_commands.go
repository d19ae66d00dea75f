package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/spec-kit/kclean/internal/session"
)

func (c *cli) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Email akun")
	password := fs.String("password", "", "Password akun")
	if err := fs.Parse(args); err != nil {
		return err
	}

	subject, err := c.session.Login(context.Background(), *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Selamat datang, %s (%s)\n", subject.Name, subject.Role)
	fmt.Println("Beranda:", subject.Role.HomePath())
	return nil
}

func (c *cli) cmdRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "Nama lengkap")
	email := fs.String("email", "", "Email")
	password := fs.String("password", "", "Password")
	confirm := fs.String("confirm", "", "Konfirmasi password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	subject, err := c.session.Register(context.Background(), session.RegisterInput{
		Name:                 *name,
		Email:                *email,
		Password:             *password,
		PasswordConfirmation: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Akun terdaftar: %s (%s)\n", subject.Name, subject.Email)
	return nil
}

func (c *cli) cmdLogout(_ []string) error {
	c.session.Logout(context.Background())
	fmt.Println("Berhasil keluar.")
	return nil
}

func (c *cli) cmdWhoami(_ []string) error {
	subject := c.session.Subject()
	if subject == nil {
		fmt.Println("Belum login.")
		return nil
	}
	fmt.Printf("%s <%s> (%s)\n", subject.Name, subject.Email, subject.Role)
	if subject.PublicCode != "" {
		fmt.Println("Kode profil:", subject.PublicCode)
	}
	return nil
}
