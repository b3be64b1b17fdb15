package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/app"
	"github.com/yeyclub/platform/internal/audit"
	"github.com/yeyclub/platform/internal/authn"
	"github.com/yeyclub/platform/internal/authz"
	"github.com/yeyclub/platform/internal/blog"
	"github.com/yeyclub/platform/internal/contact"
	"github.com/yeyclub/platform/internal/events"
	"github.com/yeyclub/platform/internal/gallery"
	"github.com/yeyclub/platform/internal/notifications"
	"github.com/yeyclub/platform/internal/observability"
	"github.com/yeyclub/platform/internal/platform/cache"
	"github.com/yeyclub/platform/internal/platform/db"
	"github.com/yeyclub/platform/internal/profiles"
	"github.com/yeyclub/platform/internal/ratelimit"
	"github.com/yeyclub/platform/internal/shared"
	"github.com/yeyclub/platform/internal/storage"
	"github.com/yeyclub/platform/jobs"
)

// repositories groups the per-module stores behind one driver choice.
type repositories struct {
	authn         authn.Repository
	profiles      profiles.Repository
	events        events.Repository
	blog          blog.Repository
	gallery       gallery.Repository
	notifications notifications.Repository
}

// pushQueue adapts the asynq client to the notifications fan-out.
type pushQueue struct {
	client *jobs.Client
}

func (q *pushQueue) Push(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	_, err := q.client.EnqueueSendPush(ctx, jobs.SendPushPayload{
		Tokens: tokens,
		Title:  title,
		Body:   body,
		Data:   data,
	})
	return err
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditOpts := []audit.Option{}
	repos := repositories{}
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()

		repos = repositories{
			authn:         authn.NewPGRepository(pool),
			profiles:      profiles.NewPGRepository(pool),
			events:        events.NewPGRepository(pool),
			blog:          blog.NewPGRepository(pool),
			gallery:       gallery.NewPGRepository(pool),
			notifications: notifications.NewPGRepository(pool),
		}
		auditOpts = append(auditOpts, audit.WithSink(audit.NewPGSink(pool)))
	case "memory":
		profileRepo := profiles.NewMemRepository()
		repos = repositories{
			authn:         authn.NewMemRepository(profileRepo),
			profiles:      profileRepo,
			events:        events.NewMemRepository(),
			blog:          blog.NewMemRepository(),
			gallery:       gallery.NewMemRepository(),
			notifications: notifications.NewMemRepository(),
		}
	}

	var limiterStore ratelimit.Store
	if cfg.RateLimitDriver == "redis" {
		limiterStore = ratelimit.NewRedisStore(redisClient)
	} else {
		limiterStore = ratelimit.NewMemoryStore()
	}
	metrics := observability.NewMetrics()
	limiter := ratelimit.NewLimiter(limiterStore, logger).WithHitObserver(metrics)

	var objectStore storage.ObjectStore
	if cfg.GCSBucket != "" {
		gcs, err := storage.NewGCSStore(ctx, cfg.GCSBucket)
		if err != nil {
			logger.Error("init gcs", slog.Any("error", err))
			os.Exit(1)
		}
		objectStore = gcs
	} else {
		objectStore = storage.NewMemoryStore(cfg.AppBaseURL)
	}

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "yeyclub_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := audit.NewLogger(logger, auditOpts...)
	pipeline := action.NewPipeline(logger, auditLogger).WithObserver(metrics)
	guard := authz.NewGuard(repos.profiles, logger)

	profilesService := profiles.NewService(guard, repos.profiles)
	eventsService := events.NewService(guard, repos.events)
	blogService := blog.NewService(guard, repos.blog)
	galleryService := gallery.NewService(guard, repos.gallery, objectStore)
	notificationsService := notifications.NewService(guard, repos.notifications, profilesService, &pushQueue{client: jobClient}, logger)
	contactService := contact.NewService(contact.NewTurnstileVerifier(cfg.TurnstileSecret), jobClient, cfg.ContactTo)
	authService := authn.NewService(repos.authn)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,

		AuthHandler:          authn.NewHandler(logger, authService, sessionManager, pipeline, limiter),
		ProfilesHandler:      profiles.NewHandler(logger, profilesService, pipeline),
		EventsHandler:        events.NewHandler(logger, eventsService, pipeline),
		BlogHandler:          blog.NewHandler(logger, blogService, pipeline),
		GalleryHandler:       gallery.NewHandler(logger, galleryService, pipeline),
		NotificationsHandler: notifications.NewHandler(logger, notificationsService, pipeline),
		ContactHandler:       contact.NewHandler(logger, contactService, pipeline, limiter),

		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
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

	if err := g.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
