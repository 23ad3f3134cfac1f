package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/inspectana/leadgen/internal/notify"
	"github.com/inspectana/leadgen/internal/store"
	"github.com/inspectana/leadgen/internal/submit"
	"github.com/inspectana/leadgen/pkg/resend"
)

// newStore opens the configured backend. Postgres is the default; sqlite is
// for local development.
func newStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.MaxConns, cfg.Store.MinConns)
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// newNotifier builds the Resend-backed notification service, or nil when no
// API key is configured so submissions still persist locally.
func newNotifier() notify.Notifier {
	if cfg.Resend.Key == "" {
		return nil
	}
	client := resend.NewClient(cfg.Resend.Key, resend.WithBaseURL(cfg.Resend.BaseURL))
	return notify.NewService(client, cfg.Resend.From, cfg.Resend.Recipient)
}

// newPipeline wires the store and notifier into a submission pipeline.
func newPipeline(ctx context.Context) (*submit.Pipeline, store.Store, error) {
	st, err := newStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return submit.NewPipeline(st, newNotifier()), st, nil
}
