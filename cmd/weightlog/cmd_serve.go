package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	adapthttp "weightlog/internal/adapter/http"
	"weightlog/internal/app"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr, webDir, fileRoot string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			if webDir != "" {
				c.cfg.Server.WebDir = webDir
			}
			if fileRoot != "" {
				c.cfg.Server.FileRoot = fileRoot
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().StringVar(&webDir, "web-dir", "", "static web directory")
	cmd.Flags().StringVar(&fileRoot, "file-root", "", "directory API requests may read and write files in")
	return cmd
}

func (c *cli) handler(ctx context.Context) (http.Handler, *app.AuthService, error) {
	store, err := c.open()
	if err != nil {
		return nil, nil, err
	}
	svc := adapthttp.Services{
		Records:  app.NewRecordService(store),
		Transfer: app.NewTransferService(store),
		Stats:    app.NewStatsService(store),
	}

	ac := c.cfg.Auth
	if !ac.Enabled() {
		slog.WarnContext(ctx, "no credentials configured, API is open to anyone who can reach it")
		return adapthttp.New(svc, c.cfg.Server.WebDir).WithFileRoot(c.cfg.Server.FileRoot).Handler(), nil, nil
	}

	svc.Auth = app.NewAuthService(app.Owner{
		Username:     ac.Owner,
		PasswordHash: ac.PasswordHash,
		Email:        ac.Email,
	}, c.sessions)

	srv := adapthttp.New(svc, c.cfg.Server.WebDir).WithFileRoot(c.cfg.Server.FileRoot)
	if ac.OIDC.Issuer != "" {
		oidcCfg, err := adapthttp.NewOIDCConfig(ctx, ac.OIDC.Issuer, ac.OIDC.ClientID, ac.OIDC.ClientSecret, ac.OIDC.RedirectURL)
		if err != nil {
			return nil, nil, fmt.Errorf("oidc setup: %w", err)
		}
		srv = srv.WithOIDC(oidcCfg)
	}
	return srv.Handler(), svc.Auth, nil
}

func (c *cli) serve(ctx context.Context) error {
	h, auth, err := c.handler(ctx)
	if err != nil {
		return err
	}
	server := &http.Server{
		Addr:              c.cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.InfoContext(gctx, "listening", "addr", server.Addr, "backend", c.cfg.Backend)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if auth != nil {
		g.Go(func() error {
			purgeSessions(gctx, auth)
			return nil
		})
	}
	return g.Wait()
}

func purgeSessions(ctx context.Context, auth *app.AuthService) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := auth.PurgeExpired(ctx); err != nil {
				slog.WarnContext(ctx, "session purge failed", "err", err)
			}
		}
	}
}
