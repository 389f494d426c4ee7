// Command schoolctl: tugas operator (migrate, seed, provision school, reset password).
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/databases/scope"
	schoolModel "schoolku_backend/internals/features/schools/model"
	schoolService "schoolku_backend/internals/features/schools/service"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/seeds"
)

var osExit = os.Exit

type cli struct {
	out      io.Writer
	open     func() (*gorm.DB, func(), error)
	password func(prompt string) (string, error)
}

func main() {
	configs.LoadEnv()
	c := &cli{
		out:      os.Stdout,
		open:     openPostgres,
		password: promptPassword,
	}
	if err := c.run(os.Args[1:]); err != nil {
		log.Print(err)
		osExit(1)
	}
}

func (c *cli) run(args []string) error {
	if len(args) == 0 {
		c.usage()
		return errors.New("command required")
	}
	switch args[0] {
	case "migrate":
		return c.migrate(args[1:])
	case "seed":
		return c.seed(args[1:])
	case "create-school":
		return c.createSchool(args[1:])
	case "reset-password":
		return c.resetPassword(args[1:])
	default:
		c.usage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (c *cli) usage() {
	fmt.Fprintln(c.out, "schoolctl commands:")
	fmt.Fprintln(c.out, "  migrate")
	fmt.Fprintln(c.out, "  seed [-schools internals/seeds/schools/data_schools.json]")
	fmt.Fprintln(c.out, "  create-school -code SD1 -name \"SD Satu\" -admin-username admin -admin-email admin@sd1.id [-timezone Asia/Jakarta]")
	fmt.Fprintln(c.out, "  reset-password -school SD1 -username admin")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func openPostgres() (*gorm.DB, func(), error) {
	db, err := database.Open(configs.PostgresDSN())
	if err != nil {
		return nil, nil, err
	}
	return db, func() { database.Close(db) }, nil
}

func (c *cli) db() (*gorm.DB, func(), error) {
	db, closeDB, err := c.open()
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return db, closeDB, nil
}

func (c *cli) migrate(args []string) error {
	if err := newFlagSet("migrate").Parse(args); err != nil {
		return err
	}
	db, closeDB, err := c.db()
	if err != nil {
		return err
	}
	defer closeDB()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintln(c.out, "migrate OK")
	return nil
}

func (c *cli) seed(args []string) error {
	fs := newFlagSet("seed")
	schools := fs.String("schools", "", "JSON file berisi school demo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	db, closeDB, err := c.db()
	if err != nil {
		return err
	}
	defer closeDB()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := seeds.RunAllSeeds(ctx, db, *schools); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintln(c.out, "seed OK")
	return nil
}

func (c *cli) createSchool(args []string) error {
	fs := newFlagSet("create-school")
	code := fs.String("code", "", "kode school (unik)")
	name := fs.String("name", "", "nama school")
	tz := fs.String("timezone", "", "IANA timezone, default UTC")
	username := fs.String("admin-username", "admin", "username admin")
	email := fs.String("admin-email", "", "email admin")
	fullName := fs.String("admin-name", "", "nama lengkap admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" || *name == "" || *email == "" {
		return errors.New("code, name, admin-email required")
	}
	pw, err := c.newPassword()
	if err != nil {
		return err
	}

	db, closeDB, err := c.db()
	if err != nil {
		return err
	}
	defer closeDB()

	p, err := schoolService.Provision(context.Background(), db, schoolService.ProvisionInput{
		Code:          *code,
		Name:          *name,
		Timezone:      *tz,
		AdminUsername: *username,
		AdminEmail:    *email,
		AdminPassword: pw,
		AdminFullName: *fullName,
	})
	if err != nil {
		return fmt.Errorf("create-school: %w", err)
	}
	fmt.Fprintf(c.out, "school %s (%s) created, admin %s\n", p.School.SchoolCode, p.School.SchoolID, p.Admin.UserUsername)
	return nil
}

func (c *cli) resetPassword(args []string) error {
	fs := newFlagSet("reset-password")
	code := fs.String("school", "", "kode school")
	username := fs.String("username", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *code == "" || *username == "" {
		return errors.New("school and username required")
	}

	db, closeDB, err := c.db()
	if err != nil {
		return err
	}
	defer closeDB()

	var school schoolModel.SchoolModel
	if err := db.Where("school_code = ?", strings.ToUpper(strings.TrimSpace(*code))).Take(&school).Error; err != nil {
		return fmt.Errorf("school %s: %w", *code, helper.ToAppError(err))
	}
	t := scope.For(db, school.SchoolID)
	var u userModel.UserModel
	if err := t.Query(&userModel.UserModel{}).
		Where("user_username = ?", strings.ToLower(strings.TrimSpace(*username))).
		Take(&u).Error; err != nil {
		return fmt.Errorf("user %s: %w", *username, helper.ToAppError(err))
	}

	pw, err := c.newPassword()
	if err != nil {
		return err
	}
	hash, err := helperAuth.HashPassword(pw)
	if err != nil {
		return err
	}
	if err := t.Updates(&userModel.UserModel{}, u.UserID, map[string]any{"user_password_hash": hash}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "password %s@%s updated\n", u.UserUsername, school.SchoolCode)
	return nil
}

// newPassword meminta password dua kali; minimal 8 karakter.
func (c *cli) newPassword() (string, error) {
	pw, err := c.password("Password: ")
	if err != nil {
		return "", err
	}
	if len(pw) < 8 {
		return "", errors.New("password must be at least 8 characters")
	}
	again, err := c.password("Ulangi password: ")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

var stdin = bufio.NewReader(os.Stdin)

// promptPassword: tanpa echo di terminal; stdin biasa (pipe) dibaca per baris.
func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
