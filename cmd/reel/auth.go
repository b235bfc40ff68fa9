package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// Login checks the admin credentials and starts a session.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	if !r.config.AdminConfigured() {
		return fmt.Errorf("%w: run `reel hash-password` and set admin.password_hash", domain.ErrAdminNotConfigured)
	}
	if !r.store.Persistent() {
		r.logger.Warn("no store backend, the session will not outlive this command")
	}

	username := cmd.String("username")
	if username == "" {
		username = r.config.Admin.Username
	}

	password, err := r.readPassword("Password: ")
	if err != nil {
		return err
	}

	if err := r.session.Login(username, password); err != nil {
		return err
	}
	return r.writePlain("✓ Logged in as %s (session valid for %s)\n", username, r.store.SessionTTL())
}

// Logout clears the admin session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := r.session.Logout(); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// Whoami reports whether an admin session is active and when it expires.
func (r *Runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	ok, err := r.session.Authenticated()
	if err != nil {
		return err
	}
	if !ok {
		return r.writePlain("not logged in\n")
	}

	flag, _, err := r.store.Session()
	if err != nil {
		return err
	}
	expires := flag.IssuedAt.Add(r.store.SessionTTL())
	return r.writePlain("%s (session expires %s, in %s)\n",
		r.config.Admin.Username,
		expires.Local().Format(time.RFC3339),
		time.Until(expires).Round(time.Minute),
	)
}

// HashPassword prompts for a password twice and prints its bcrypt hash.
func (r *Runner) HashPassword(ctx context.Context, cmd *cli.Command) error {
	password, err := r.readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := r.readPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", hash)
}
