// @title Cat Registry API
// @version 1.0
// @description Registro de gatos y usuarios con consultas por bounding box.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	jwtauth "cat-registry/internal/adapters/auth/jwt"
	"cat-registry/internal/adapters/auth/remote"
	mdb "cat-registry/internal/adapters/storage/mongodb"
	pg "cat-registry/internal/adapters/storage/postgres"
	"cat-registry/internal/platform/config"
	"cat-registry/internal/platform/logger"
	"cat-registry/internal/platform/metrics"
	"cat-registry/internal/router"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var configFile string

	cmd := &cobra.Command{
		Use:           "cat-registry",
		Short:         "REST API de gatos y usuarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", configFile, err)
				}
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "archivo de config (yaml, json, toml)")
	f.String("http-addr", "", "dirección de escucha (default :8080 o :$PORT)")
	f.String("store-driver", "", "memory | postgres | mongo")
	f.String("log-level", "", "debug | info | warn | error")
	f.String("log-format", "", "text | json")
	f.String("auth-mode", "", "dev | jwt | remote")

	for key, flag := range map[string]string{
		"http.addr":    "http-addr",
		"store.driver": "store-driver",
		"log.level":    "log-level",
		"log.format":   "log-format",
		"auth.mode":    "auth-mode",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App,
	})
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	opts := router.Options{
		Logger:  log,
		Metrics: metrics.NewHTTP(),
	}

	closeStore, err := openStore(ctx, cfg.Store, &opts)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := configureAuth(cfg.Auth, &opts); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":   cfg.HTTP.Addr,
			"store":  cfg.Store.Driver,
			"auth":   cfg.Auth.Mode,
			"format": cfg.Log.Format,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": cfg.HTTP.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore completa opts con los repos del driver elegido. memory deja los repos en nil.
func openStore(ctx context.Context, sc config.StoreConfig, opts *router.Options) (func(), error) {
	switch sc.Driver {
	case config.DriverPostgres:
		db, err := pg.Open(ctx, sc.PostgresDSN)
		if err != nil {
			return nil, err
		}
		opts.Cats = pg.NewCatsRepo(db)
		opts.Users = pg.NewUsersRepo(db)
		return func() { closeDB(db) }, nil

	case config.DriverMongo:
		client, db, err := mdb.Connect(ctx, sc.MongoURI, sc.MongoDatabase)
		if err != nil {
			return nil, err
		}
		opts.Cats = mdb.NewCatsRepo(db)
		opts.Users = mdb.NewUsersRepo(db)
		return func() { disconnect(client) }, nil

	default:
		return func() {}, nil
	}
}

func configureAuth(ac config.AuthConfig, opts *router.Options) error {
	switch ac.Mode {
	case config.AuthJWT:
		signer, err := jwtauth.NewSigner(ac.JWTSecret, ac.JWTTTL, ac.JWTIssuer)
		if err != nil {
			return err
		}
		opts.AuthVerifier = signer
		opts.TokenIssuer = signer

	case config.AuthRemote:
		client, err := remote.NewClient(remote.Config{BaseURL: ac.RemoteURL, APIKey: ac.RemoteAPIKey})
		if err != nil {
			return err
		}
		opts.AuthVerifier = remote.NewVerifier(client)
	}
	// dev: sin verifier, identidad por headers X-Debug-*
	return nil
}

func closeDB(db *sql.DB) { _ = db.Close() }

func disconnect(c *mongo.Client) { _ = c.Disconnect(context.Background()) }
