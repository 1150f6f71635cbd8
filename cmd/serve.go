package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/negagl/my-movie-api/internal/auth"
	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/server"
	"github.com/negagl/my-movie-api/internal/shared"
	"github.com/negagl/my-movie-api/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve opens the catalog database and runs the HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	store, closeStore, err := r.openStore(config)
	if err != nil {
		return err
	}
	defer closeStore()

	if cmd.Bool("seed") {
		if err := r.seed(ctx, store); err != nil {
			return err
		}
	}

	handler, err := r.buildServer(config, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, config.Server.Addr(), handler, shared.WithLogger(r.logger, "component", "http"))
}

// buildServer wires the token service, admin principal and store into the router.
func (r *Runner) buildServer(config *shared.Config, store models.MovieStore) (*server.BasicRouter, error) {
	tokens, err := r.tokenService(config)
	if err != nil {
		return nil, err
	}

	admin, err := auth.NewAdmin(config.Auth.AdminEmail, config.Auth.AdminPassword, config.Auth.AdminPasswordHash, 0)
	if err != nil {
		return nil, err
	}

	return server.New(server.Opts{
		Store:  store,
		Tokens: tokens,
		Admin:  admin,
		Logger: r.logger,
	})
}

func (r *Runner) tokenService(config *shared.Config) (*auth.TokenService, error) {
	ttl, err := config.Auth.TTL()
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(auth.TokenOpts{
		Secret: config.Auth.JWTSecret,
		TTL:    ttl,
		Issuer: config.Auth.Issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	return tokens, nil
}

// seed loads the default catalog into an empty store.
func (r *Runner) seed(ctx context.Context, store models.MovieStore) error {
	engine := tasks.NewCatalogEngine(store)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()

	added, err := engine.Seed(ctx, progressCh, models.DefaultMovies())
	close(progressCh)
	<-done

	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	if added > 0 {
		r.logger.Info("seeded default catalog", "movies", added)
	}
	return nil
}
