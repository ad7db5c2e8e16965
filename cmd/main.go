package main

import (
	"chat-live/auth"
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/infrastructure/websocket"
	"chat-live/internal"
	"chat-live/moderation"
	"chat-live/observability"
	"chat-live/protocol"
	"chat-live/repositories"
	"chat-live/repositories/postgres"
	"chat-live/repositories/redisstore"
	"chat-live/runtime"
	"chat-live/runtime/workers"
	"chat-live/services"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// storage is what run needs from whichever store backs the server.
type storage struct {
	store  contract.ChatStore
	typing contract.TypingRepository
	extra  map[string]http.Handler
	purger workers.ExpiredTypingPurger
	close  func()
}

// run wires every component and owns their lifecycle, deferred cleanups
// run before main exits.
func run() error {
	seed := flag.Bool("seed", false, "seed demo users and chat 7 into the Badger store")
	flag.Parse()

	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := observability.NewMonitoringManager(log)

	// 3. Storage
	var st storage
	var err error
	switch config.StoreDriver {
	case internal.DriverPostgres:
		st, err = openPostgres(ctx, log, config)
	default:
		st, err = openBadger(ctx, log, config, monitor, *seed)
	}
	if err != nil {
		return err
	}
	defer st.close()

	if config.RedisAddr != "" {
		rdb, err := redisstore.NewClient(ctx, config.RedisAddr)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		st.typing = redisstore.NewTypingRepository(rdb)
		log.Info("Typing indicators kept in Redis", "address", config.RedisAddr)
	}

	// 4. Delivery core
	registry := runtime.NewRegistry(log, st.store, monitor, config.RegistryShards, config.PresenceBuffer)
	broadcaster := runtime.NewBroadcaster(log, st.store, registry)
	typing := services.NewTypingManager(log, st.typing, st.store, config.TypingTTL)
	pipeline := runtime.NewPipeline(
		log,
		protocol.NewDecoder(config.MaxContentLength),
		services.NewGate(log, st.store),
		st.store,
		broadcaster,
		typing,
		services.NewReceiptManager(st.store),
		monitor,
	)

	if config.CensoredWordsFile != "" {
		words, err := moderation.LoadWordsFile(config.CensoredWordsFile)
		if err != nil {
			return fmt.Errorf("censored words: %w", err)
		}
		moderator, err := moderation.NewModerator(words, config.Replacement(), log)
		if err != nil {
			return fmt.Errorf("moderator: %w", err)
		}
		pipeline.WithFilter(moderator)
		log.Info("Moderation enabled", "words", len(words))
	}

	// 5. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		registry,
		workers.NewTypingSweeper(log, typing, broadcaster, monitor, config.TypingSweepInterval),
		workers.NewHealthMonitoringWorker(log, monitor, config.MetricInterval),
		workers.NewChannelCapacityWorker(log, []workers.NamedChannel{
			{Name: "presence", Channel: registry.PresenceQueue()},
		}, monitor, config.MetricInterval),
	)
	if st.purger != nil {
		sup.Add(workers.NewTypingPurgeWorker(log, st.purger, config.TypingTTL))
	}
	go sup.Run(ctx)

	// 6. HTTP Server Setup
	authenticator := auth.NewAuthenticator(log, auth.NewTokenManager(config.JWTSecret, config.JWTIssuer, config.AuthTokenDuration))
	handler := websocket.NewHandler(
		log,
		authenticator,
		registry,
		pipeline,
		monitor,
		websocket.NewOriginPolicy(log, config.Origins()),
		websocket.Options{
			SendBuffer:   config.SendBufferSize,
			WriteTimeout: config.WriteTimeout,
			PongTimeout:  config.PongTimeout,
			PingInterval: config.PingInterval,
			MaxFrameSize: config.MaxFrameSize,
			FrameTimeout: config.StoreTimeout,
		},
	)
	server := websocket.CreateServer(config.Address(), websocket.NewRouter(log, handler, registry, monitor, st.extra))

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting chat server", "address", config.Address(), "path", websocket.ChatPath, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		sup.Stop()
		return err
	}

	// 8. Final Cleanup
	registry.CloseAll(domain.CloseShutdown)
	if err := websocket.Shutdown(log, server, config.ShutdownTimeout); err != nil {
		log.Warn("Server shutdown incomplete", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")
	return nil
}

func openBadger(ctx context.Context, log *slog.Logger, config internal.Config,
	monitor *observability.MonitoringManager, seed bool) (storage, error) {
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return storage{}, fmt.Errorf("database opening failed: %w", err)
	}
	store, err := repositories.NewBadgerStore(db, log, lo.FromPtr(config.LimitMessages))
	if err != nil {
		_ = db.Close()
		return storage{}, fmt.Errorf("badger store: %w", err)
	}
	if seed {
		if err := seedDemo(ctx, log, store); err != nil {
			_ = store.Close()
			_ = db.Close()
			return storage{}, err
		}
	}
	inspect := internal.InspectHandler(db, nil, func() any { return monitor.GetLatest() })
	return storage{
		store:  store,
		typing: store,
		extra:  map[string]http.Handler{internal.DebugInspectPath: inspect},
		close: func() {
			log.Info("Closing BadgerDB...")
			_ = store.Close()
			_ = db.Close()
		},
	}, nil
}

func openPostgres(ctx context.Context, log *slog.Logger, config internal.Config) (storage, error) {
	store, err := postgres.Open(config.PostgresDSN, log, config.ConnectAttempts, 2*time.Second)
	if err != nil {
		return storage{}, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return storage{}, fmt.Errorf("postgres migration: %w", err)
	}
	return storage{
		store:  store,
		typing: store,
		purger: store,
		close: func() {
			log.Info("Closing Postgres...")
			_ = store.Close()
		},
	}, nil
}
