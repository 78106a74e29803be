package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sujalbistaa/campus-confessions/internal/config"
	"github.com/sujalbistaa/campus-confessions/internal/db"
	routes "github.com/sujalbistaa/campus-confessions/internal/http"
	"github.com/sujalbistaa/campus-confessions/internal/logger"
	"github.com/sujalbistaa/campus-confessions/internal/sanitize"
	"github.com/sujalbistaa/campus-confessions/internal/service"
)

// app holds what every subcommand needs, built once in PersistentPreRunE.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	dotenvHit bool
}

func newRootCmd(dotenvHit bool) *cobra.Command {
	a := &app{dotenvHit: dotenvHit}

	root := &cobra.Command{
		Use:   "confessions",
		Short: "Campus Confessions API server",
		Long: `Serves the anonymous confession API: submit, browse, like and moderate
short posts backed by a SQL store (SQLite or Postgres via DATABASE_URL).

Run without a subcommand to migrate and serve.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			a.log = logger.New(a.cfg.Log)
			if !a.dotenvHit {
				a.log.Debug().Msg("no .env file found, reading from environment")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error { return a.serve(cmd.Context()) },
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE:  func(cmd *cobra.Command, args []string) error { return a.serve(cmd.Context()) },
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the confession table and exit",
		RunE:  func(cmd *cobra.Command, args []string) error { return a.migrate() },
	})

	return root
}

func (a *app) openDB() (*gorm.DB, error) {
	database, err := db.Open(a.cfg.DatabaseURL, a.log)
	if err != nil {
		return nil, err
	}
	a.log.Info().Msg("running database migrations")
	if err := db.Migrate(database); err != nil {
		_ = db.Close(database)
		return nil, err
	}
	a.log.Info().Msg("migrations complete")
	return database, nil
}

func (a *app) migrate() error {
	database, err := a.openDB()
	if err != nil {
		return err
	}
	return db.Close(database)
}

func (a *app) serve(ctx context.Context) error {
	database, err := a.openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	env, sanitizer := newEnv(a.cfg, db.NewConfessionRepo(database))

	gin.SetMode(a.cfg.GinMode)
	router := routes.NewRouter(env, routes.RouteOptions{CORSOrigin: a.cfg.CORSOrigin, Logger: a.log})

	srv := &http.Server{
		Addr:    a.cfg.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", srv.Addr).Int("blocked_words", sanitizer.Len()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info().Msg("server exiting")
	return nil
}

// newEnv wires the services over repo and returns the sanitizer they share.
func newEnv(cfg config.Config, repo *db.ConfessionRepo) (*routes.Env, *sanitize.Sanitizer) {
	s := sanitize.New(cfg.BlockedWords)
	return &routes.Env{
		Services: service.New(repo, s),
		Store:    repo,
	}, s
}
