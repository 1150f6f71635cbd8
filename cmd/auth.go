package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/negagl/my-movie-api/internal/models"
	"github.com/negagl/my-movie-api/internal/shared"
	"github.com/urfave/cli/v3"
)

// TokenIssue prints a bearer token signed with the configured secret.
//
// Only tokens carrying the admin email pass the gate; any other email is still signed.
func (r *Runner) TokenIssue(ctx context.Context, cmd *cli.Command) error {
	config, err := r.resolveConfig(cmd)
	if err != nil {
		return err
	}

	email := strings.TrimSpace(cmd.String("email"))
	if email == "" {
		email = config.Auth.AdminEmail
	}
	if email == "" {
		return fmt.Errorf("%w: --email (no admin_email configured)", shared.ErrMissingArgument)
	}

	tokens, err := r.tokenService(config)
	if err != nil {
		return err
	}

	token, err := tokens.Issue(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	r.logger.Info("token issued", "email", email, "ttl", tokens.TTL())
	return r.writePlain("%s\n", token)
}

// RemoteLogin exchanges credentials for a token on a running API and prints it.
func (r *Runner) RemoteLogin(ctx context.Context, cmd *cli.Command) error {
	api := r.remoteAPI(cmd)

	token, err := api.Login(ctx, models.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	})
	if err != nil {
		return err
	}

	r.logger.Info("authentication successful")
	return r.writePlain("%s\n", token)
}
