package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	redisadapter "github.com/tillflow/admin-api/internal/adapters/redis"
	"github.com/tillflow/admin-api/internal/backend"
	"github.com/tillflow/admin-api/internal/bootstrap"
	"github.com/tillflow/admin-api/internal/session"
)

// cliScope is the fixed session scope for the operator tool. All tillflowctl
// invocations on a host share one persisted session.
const cliScope = "cli"

const commandTimeout = 30 * time.Second

type cliSession struct {
	Store   *session.Store
	Backend *backend.Client
	client  redis.UniversalClient
	logger  *slog.Logger
}

func (s *cliSession) Close() {
	if err := s.client.Close(); err != nil {
		s.logger.Warn("redis close failed", "error", err)
	}
}

// openCLISession connects Redis and the backend client and rehydrates the
// persisted CLI session.
func openCLISession(ctx context.Context, cmdCtx *commandContext) (*cliSession, error) {
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, err
	}

	bc, err := backend.NewClient(backend.Config{
		BaseURL: cmdCtx.Config.Backend.BaseURL,
		Timeout: cmdCtx.Config.Backend.Timeout,
	})
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, err
	}

	repo, err := redisadapter.NewSessionRepo(client, redisadapter.SessionRepoOptions{
		Scope: cliScope,
		TTL:   cmdCtx.Config.Session.TTL,
	})
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, err
	}

	store, err := session.Open(ctx, session.Options{Repo: repo, Backend: bc})
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("open session: %w", err)
	}

	return &cliSession{Store: store, Backend: bc, client: client, logger: cmdCtx.Logger}, nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("both -email and -password are required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	sess, err := openCLISession(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := sess.Backend.Login(ctx, *email, *password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !res.Complete() {
		return errors.New("login: backend returned an incomplete response")
	}
	if err := sess.Store.Login(ctx, res.Token, *res.User); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	cmdCtx.Logger.Info("logged in", "email", res.User.Email, "role", res.User.Role)
	return nil
}

func runLogout(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("logout takes no arguments, got %d", len(args))
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	sess, err := openCLISession(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Store.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	cmdCtx.Logger.Info("logged out")
	return nil
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("whoami takes no arguments, got %d", len(args))
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	sess, err := openCLISession(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if !sess.Store.Authenticated() {
		return writef(os.Stdout, "anonymous\n")
	}

	out, err := json.MarshalIndent(sess.Store.User(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return writef(os.Stdout, "%s\n", out)
}

func runRegisterAdmin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register-admin", flag.ContinueOnError)
	fullName := fs.String("full-name", "", "admin full name (required)")
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	phone := fs.String("phone", "", "phone number")
	secret := fs.String("secret", "", "admin registration secret (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fullName == "" || *email == "" || *password == "" || *secret == "" {
		return errors.New("-full-name, -email, -password, and -secret are required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	sess, err := openCLISession(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer sess.Close()

	err = sess.Store.RegisterAdmin(ctx, backend.RegisterAdminInput{
		FullName:    *fullName,
		Email:       *email,
		Password:    *password,
		PhoneNumber: *phone,
		AdminSecret: *secret,
	})
	if err != nil {
		return fmt.Errorf("register admin: %w", err)
	}

	if sess.Store.Authenticated() {
		cmdCtx.Logger.Info("admin registered and signed in", "email", *email)
	} else {
		cmdCtx.Logger.Info("admin registered; sign in with the login command", "email", *email)
	}
	return nil
}

func runResetPassword(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	email := fs.String("email", "", "account email (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	sess, err := openCLISession(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Store.ResetPassword(ctx, *email); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	cmdCtx.Logger.Info("reset email requested", "email", *email)
	return nil
}

func runUsers(cmdCtx *commandContext, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("users takes no arguments, got %d", len(args))
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, commandTimeout)
	defer cancel()

	sess, err := openCLISession(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if !sess.Store.Authenticated() {
		return errors.New("not signed in; run tillflowctl login first")
	}

	users, err := sess.Backend.ListUsers(ctx, sess.Store.Token())
	if err != nil {
		if backend.IsUnauthorized(err) {
			// The token died upstream; drop the stale session before failing.
			if logoutErr := sess.Store.Logout(ctx); logoutErr != nil {
				cmdCtx.Logger.Warn("clear stale session failed", "error", logoutErr)
			}
			return errors.New("session expired; run tillflowctl login again")
		}
		return fmt.Errorf("list users: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tEMAIL\tNAME\tROLE\tVERIFIED\n"); err != nil {
		return err
	}
	for _, u := range users {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Email, u.FullName, u.Role, u.Verified); err != nil {
			return err
		}
	}
	return tw.Flush()
}
