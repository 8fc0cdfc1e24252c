// Command tillflowctl is the operator tool for the TillFlow admin gateway:
// database migrations plus a backend session for scripted admin calls.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tillflow/admin-api/config"
	"github.com/tillflow/admin-api/internal/bootstrap"
	"github.com/tillflow/admin-api/internal/migrate"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"migrate": {
			name:        "migrate",
			description: "Run database migrations",
			run:         runMigrations,
		},
		"login": {
			name:        "login",
			description: "Sign in against the backend and persist the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Clear the persisted CLI session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the identity behind the persisted CLI session",
			run:         runWhoami,
		},
		"register-admin": {
			name:        "register-admin",
			description: "Register a new admin account with the backend",
			run:         runRegisterAdmin,
		},
		"reset-password": {
			name:        "reset-password",
			description: "Trigger the backend password reset flow for an email",
			run:         runResetPassword,
		},
		"users": {
			name:        "users",
			description: "List backend user accounts using the CLI session",
			run:         runUsers,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: tillflowctl <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

type migrateOptions struct {
	Timeout time.Duration
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultMigrationTimeout, "migration timeout")
	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	return migrateOptions{Timeout: *timeout}, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	// Migrations run explicitly here, not during connect.
	dbCfg := cmdCtx.Config.Postgres
	dbCfg.RunMigrationsOnStart = false

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: dbCfg, Logger: cmdCtx.Logger})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, opts.Timeout)
	defer cancel()

	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	cmdCtx.Logger.Info("migrations complete")
	return nil
}
