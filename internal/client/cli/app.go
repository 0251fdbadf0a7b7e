package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	relayapi "github.com/iudanet/fleetsync/internal/client/api"
	"github.com/iudanet/fleetsync/internal/client/iocli"
	"github.com/iudanet/fleetsync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/fleetsync/internal/client/sync"
	"github.com/iudanet/fleetsync/internal/config"
	"github.com/iudanet/fleetsync/internal/token"
)

// App открытая реплика, с которой работает одна команда
type App struct {
	io      iocli.IO
	manager *clientsync.Manager
	relay   *relayapi.Client
	store   *boltdb.Storage
	logger  *slog.Logger
	cfg     *config.Client
}

// open открывает базу реплики и восстанавливает менеджер
func (o *RootOptions) open(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()

	store, err := boltdb.New(ctx, o.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open replica database: %w", err)
	}

	manager, err := clientsync.Open(ctx, store, nil, o.logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	// Без секрета запросы уходят без токена, relay их отклонит
	var tokens relayapi.TokenIssuer
	if o.cfg.Secret != "" {
		svc, err := token.NewService(o.cfg.Secret, o.cfg.TokenTTL)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		tokens = svc
	}

	relay := relayapi.NewClient(o.cfg.RelayURL, manager.ReplicaID(), tokens)
	manager.SetTransport(relay)

	return &App{
		io:      iocli.New(cmd.OutOrStdout(), o.Format),
		manager: manager,
		relay:   relay,
		store:   store,
		logger:  o.logger,
		cfg:     o.cfg,
	}, nil
}

// Close сохраняет состояние реплики и закрывает базу
func (a *App) Close(ctx context.Context) error {
	flushErr := a.manager.Flush(ctx)
	closeErr := a.store.Close()
	return errors.Join(flushErr, closeErr)
}

// runWithApp открывает реплику на время выполнения fn
func (o *RootOptions) runWithApp(fn func(ctx context.Context, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		app, err := o.open(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := app.Close(context.WithoutCancel(cmd.Context())); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}()

		return fn(cmd.Context(), app, args)
	}
}
