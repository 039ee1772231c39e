package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hanksha/amenity-booking-backend/api"
	"github.com/hanksha/amenity-booking-backend/config"
	"github.com/hanksha/amenity-booking-backend/notify"
	rv "github.com/hanksha/amenity-booking-backend/reservation"
	"github.com/hanksha/amenity-booking-backend/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()

	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Environment)

	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}

	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, closeStore, err := openBlobStore(ctx, cfg, logger)

	if err != nil {
		return err
	}

	defer closeStore()

	if cfg.Storage.CacheTTL > 0 {
		blobs = storage.NewCachedBlobStore(blobs, cfg.Storage.CacheTTL)
	}

	store := storage.NewReservationStore(blobs, cfg.Storage.Key)

	notifiers := notify.Multi{notify.NewLogNotifier(logger)}

	if cfg.DiscordEnabled() {
		discordClient := notify.NewDiscordClient(cfg.Discord.BotToken, "")
		notifiers = append(notifiers, notify.NewDiscordNotifier(discordClient, cfg.Discord.ChannelID))
		logger.Info("discord notifications enabled", zap.String("channel", cfg.Discord.ChannelID))
	}

	var ids rv.IDGenerator = rv.TimestampIDs{}
	if cfg.IDStrategy == "uuid" {
		ids = rv.UUIDs{}
	}

	service := rv.NewService(store, notifiers, ids, rv.SystemClock{}, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(
		api.NewReservationHandler(service),
		api.NewViewHandler(service, notify.NewLogNavigator(logger), cfg.ViewTTL),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.Storage.Backend))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBlobStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.BlobStore, func(), error) {
	switch cfg.Storage.Backend {
	case "memory":
		logger.Warn("using in-memory storage, reservations are lost on restart")
		return storage.NewMemoryStore(), func() {}, nil

	case "sqlite":
		store, err := storage.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open sqlite database: %w", err)
		}

		logger.Info("opened sqlite database", zap.String("path", cfg.Storage.SQLitePath))
		return store, func() { store.Close() }, nil

	case "postgres":
		logger.Info("connecting to PostgreSQL database")
		pool, err := pgxpool.New(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to database: %w", err)
		}

		if err := storage.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to initialize tables: %w", err)
		}

		logger.Info("initialized database tables")
		return storage.NewPostgresStore(pool), pool.Close, nil

	case "redis":
		client, err := storage.NewRedisClient(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("connected to redis")
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend: %q", cfg.Storage.Backend)
	}
}
