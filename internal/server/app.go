// Package server wires configuration, persistence, blob storage and the
// HTTP API together and runs them until the process is signalled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/logging"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/config"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/server/rest"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
	"github.com/dmitrijs2005/contactbook/internal/server/storage"
)

const dbConnectTimeout = 10 * time.Second

var errEmptySecret = errors.New("secret key must not be empty")

var (
	logOutput io.Writer = os.Stdout
	openDB              = sql.Open
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(c *config.Config) (*App, error) {
	if c.SecretKey == "" {
		return nil, errEmptySecret
	}

	logger := logging.NewJSONLogger(logOutput, c.LogLevel)
	ctx := context.Background()

	if c.SecretKey == config.DefaultSecretKey && c.DatabaseDSN != config.MemoryDSN {
		logger.Warn(ctx, "using the default secret key, tokens can be forged; set CONTACTBOOK_SECRET_KEY")
	}

	db, rm, err := openRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := openStore(ctx, c)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenTTL)

	us := services.NewUserService(db, rm, hasher, codec, logger)
	cs := services.NewContactService(db, rm, store, logger)
	fs := services.NewFileService(db, rm, store, logger)

	srv := rest.NewServer(rest.Options{
		Address:         c.HTTPAddr,
		MaxUploadSize:   c.MaxUploadSize,
		CORSOrigins:     c.CORSOrigins,
		ShutdownTimeout: c.ShutdownTimeout,
	}, logger, us, cs, fs, codec)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// openRepositories returns a nil *sql.DB together with the in-memory manager
// when the DSN is config.MemoryDSN.
func openRepositories(ctx context.Context, c *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == config.MemoryDSN {
		return nil, repomanager.NewInMemoryRepositoryManager(), nil
	}

	db, err := openDB("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeDB(db)
		return nil, nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return db, rm, nil
}

func openStore(ctx context.Context, c *config.Config) (storage.Store, error) {
	switch c.StorageBackend {
	case config.StorageLocal:
		return storage.NewLocalStore(c.UploadDir)
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// initSignalHandler cancels the app context on SIGINT, SIGTERM or SIGQUIT.
// The returned func stops listening.
func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves the HTTP API until ctx is cancelled or a termination signal
// arrives, then releases the database pool.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend, "memory_db", app.db == nil)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
	}

	closeDB(app.db)
	app.logger.Info(ctx, "App stopped")
	return err
}
