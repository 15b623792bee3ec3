package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/navbryce/next-blog-be/config"
	"github.com/navbryce/next-blog-be/db/migrations"
	"github.com/navbryce/next-blog-be/db/sqlstore"
	"github.com/navbryce/next-blog-be/server"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := rootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootApp() *cli.App {
	return &cli.App{
		Name:  "blog",
		Usage: "A minimal personal blog",
		Description: `Serves a server rendered blog: list posts, read a post,
		write a post through a form and delete a post.

		Flags can generally be set via environment variables, e.g.:

		--db-dsn => BLOG_DB_DSN=blog.db
		--port => PORT=8000
		`,
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			rollbackCmd(),
		},
		Action: func(ctx *cli.Context) error {
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the blog",
		Flags: config.ServeFlags(),
		Action: func(ctx *cli.Context) error {
			cfg, err := config.FromContext(ctx)
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()
			return serve(ctx.Context, cfg)
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run database migrations",
		Description: `Runs database migrations on the configured database. A sqlite3 database file is created if it does not exist.`,
		Flags:       append(config.DatabaseFlags(), config.LogFlags()...),
		Action: func(ctx *cli.Context) error {
			cfg, err := config.FromContext(ctx)
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()
			log.WithField("driver", cfg.DBDriver).Info("Running migrations")
			return migrations.Up(cfg.DBDriver, cfg.DBDSN)
		},
	}
}

func rollbackCmd() *cli.Command {
	return &cli.Command{
		Name:        "rollback",
		Usage:       "Rollback database migration",
		Description: `Rolls back the last database migration`,
		Flags:       append(config.DatabaseFlags(), config.LogFlags()...),
		Action: func(ctx *cli.Context) error {
			cfg, err := config.FromContext(ctx)
			if err != nil {
				return err
			}
			cfg.ConfigureLogging()
			log.WithField("driver", cfg.DBDriver).Info("Rolling back migration")
			return migrations.Down(cfg.DBDriver, cfg.DBDSN)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.Migrate {
		if err := migrations.Up(cfg.DBDriver, cfg.DBDSN); err != nil {
			return err
		}
	}

	db, err := sqlstore.GetDatabase(cfg.StoreOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := server.New(cfg, db)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("Starting server")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Gracefully shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Done!")
	return nil
}
