package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/tindahan/tindahan/internal/adapter/postgres"
	"github.com/tindahan/tindahan/internal/config"
	"github.com/tindahan/tindahan/internal/domain/profile"
	"github.com/tindahan/tindahan/internal/port/database"
	"github.com/tindahan/tindahan/internal/service"
)

// Superusers are registered under a fixed business key so they never
// collide with a real business.
const (
	superuserBusinessName = "app"
	superuserIdentifier   = "admin"
)

// runAdmin dispatches admin subcommands (create-superuser, reset-password, list-profiles).
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "create-superuser":
		return runAdminCreateSuperuser(args[1:])
	case "reset-password":
		return runAdminResetPassword(args[1:])
	case "list-profiles":
		return runAdminListProfiles(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: tindahan admin <command> [options]

Commands:
  create-superuser   Create a superuser account
  reset-password     Reset a profile's password
  list-profiles      List all registered profiles
  help               Show this help message

Examples:
  tindahan admin create-superuser --email admin@localhost --surname Admin --given-name Root
  tindahan admin reset-password --email owner@shop.test
  tindahan admin list-profiles
`)
}

func loadAdminDeps() (database.Store, *service.AuthService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(pool)
	authSvc, err := service.NewAuthService(store, &cfg.Auth)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("auth service: %w", err)
	}

	cleanup := func() {
		authSvc.Close()
		pool.Close()
	}
	return store, authSvc, cleanup, nil
}

func runAdminCreateSuperuser(args []string) error {
	fs := flag.NewFlagSet("create-superuser", flag.ContinueOnError)
	email := fs.String("email", "", "email address (required)")
	surname := fs.String("surname", "", "owner surname (required)")
	givenName := fs.String("given-name", "", "owner given name (required)")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *surname == "" {
		return fmt.Errorf("--surname is required")
	}
	if *givenName == "" {
		return fmt.Errorf("--given-name is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}
	if len(pass) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	store, authSvc, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	hash, err := authSvc.HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	p := &profile.Profile{
		ID:             uuid.New().String(),
		Email:          *email,
		BusinessName:   superuserBusinessName,
		Identifier:     superuserIdentifier,
		OwnerSurname:   *surname,
		OwnerGivenName: *givenName,
		IsActive:       true,
		IsStaff:        true,
		IsSuperuser:    true,
		PasswordHash:   hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p.Normalize()

	ctx := context.Background()
	if err := store.CreateProfile(ctx, p); err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Superuser created: %s (id=%s)\n", p.Email, p.ID)
	return nil
}

func runAdminResetPassword(args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	email := fs.String("email", "", "email address (required)")
	password := fs.String("password", "", "new password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	newPass := *password
	if newPass == "" {
		var err error
		newPass, err = promptPassword("New password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}
	if len(newPass) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	store, authSvc, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	p, err := store.GetProfileByEmail(ctx, profile.NormalizeEmail(*email))
	if err != nil {
		return fmt.Errorf("find profile: %w", err)
	}

	hash, err := authSvc.HashPassword(newPass)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	p.PasswordHash = hash

	if err := store.UpdateProfile(ctx, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	// Invalidate existing sessions.
	if err := store.DeleteRefreshTokensByProfile(ctx, p.ID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Password reset successfully for %s\n", *email)
	return nil
}

func runAdminListProfiles(args []string) error {
	fs := flag.NewFlagSet("list-profiles", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, _, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	profiles, err := store.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMAIL\tBUSINESS\tACTIVE\tSTAFF\tSUPERUSER")
	for i := range profiles {
		p := &profiles[i]
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\t%t\n",
			p.ID, p.Email, p.FullBusinessName, p.IsActive, p.IsStaff, p.IsSuperuser)
	}
	return w.Flush()
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
