package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genricoloni/mprisnotify/internal/config"
	"github.com/genricoloni/mprisnotify/internal/control"
	"github.com/genricoloni/mprisnotify/internal/coordinator"
	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/genricoloni/mprisnotify/internal/engine"
	"github.com/genricoloni/mprisnotify/internal/executor"
	"github.com/genricoloni/mprisnotify/internal/fetcher"
	"github.com/genricoloni/mprisnotify/internal/mpris"
	"github.com/genricoloni/mprisnotify/internal/processor"
	"github.com/genricoloni/mprisnotify/internal/render"
	"github.com/genricoloni/mprisnotify/internal/shell"
	"github.com/genricoloni/mprisnotify/internal/theme"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	appName            = "mprisnotify"
	defaultHookTimeout = 10 * time.Second
)

// AppOptions is the full dependency graph of the daemon
var AppOptions = fx.Options(
	// Provide dependencies
	fx.Provide(
		newLogger,
		config.NewAppConfig,
		newFetcher,
		newArtworkFetcher,
		newProcessor,
		newShell,
		newTracker,
		newThemeDetector,
		newHookExecutor,
		newRenderer,
		newCoordinator,
		newControl,
		newSupervisor,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance.
// MPRISNOTIFY_DEBUG=1 switches to the development logger.
func newLogger() (*zap.Logger, error) {
	if os.Getenv("MPRISNOTIFY_DEBUG") == "1" {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func newFetcher(logger *zap.Logger, cfg *config.AppConfig) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(logger, fetcher.Options{
		Timeout:  cfg.Fetch.Timeout,
		RetryMax: cfg.Fetch.RetryMax,
	})
}

func newArtworkFetcher(lc fx.Lifecycle, logger *zap.Logger, f *fetcher.HTTPFetcher, cfg *config.AppConfig) domain.ArtworkFetcher {
	// Every attempt gets the full client timeout
	budget := cfg.Fetch.Timeout * time.Duration(cfg.Fetch.RetryMax+1)
	async := fetcher.NewAsync(logger, f, budget)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			async.Close()
			return nil
		},
	})
	return async
}

func newProcessor(logger *zap.Logger, cfg *config.AppConfig) domain.ImageProcessor {
	return processor.NewArtworkProcessor(logger, processor.Config{
		IconSize:         cfg.IconSize,
		PlaceholderPath:  cfg.PlaceholderArt,
		PlaceholderColor: cfg.PlaceholderColor,
	})
}

func newShell(logger *zap.Logger, images domain.ImageProcessor) (*shell.Shell, error) {
	bus, err := shell.NewSessionBus()
	if err != nil {
		return nil, err
	}
	return shell.New(logger, bus, images, appName), nil
}

func newTracker(logger *zap.Logger, cfg *config.AppConfig) *mpris.Tracker {
	return mpris.NewTracker(logger, cfg.Player)
}

func newThemeDetector(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig) domain.ThemeDetector {
	var reader theme.SchemeReader
	if cfg.ThemeMode() == domain.ThemeAuto {
		portal, err := theme.NewPortalReader()
		if err != nil {
			logger.Warn("Desktop portal unavailable, using background color", zap.Error(err))
		} else {
			reader = portal
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return portal.Close()
				},
			})
		}
	}
	return theme.NewDetector(logger, cfg.ThemeMode(), reader, cfg.BackgroundColor)
}

func newHookExecutor(logger *zap.Logger, cfg *config.AppConfig) domain.HookRunner {
	return executor.NewHookExecutor(logger, cfg.HookCommands(), defaultHookTimeout)
}

func newRenderer(cfg *config.AppConfig) *render.Renderer {
	return render.NewRenderer(render.Options{
		SmallIcon:    cfg.SmallIcon,
		BodyFormat:   cfg.BodyFormat,
		TargetClass:  cfg.TargetClass,
		TargetBundle: cfg.TargetBundle,
		Actions:      cfg.Actions,
		Resolver:     render.NewMapResolver(cfg.Resources),
	})
}

func newCoordinator(
	logger *zap.Logger,
	cfg *config.AppConfig,
	tracker *mpris.Tracker,
	sh *shell.Shell,
	art domain.ArtworkFetcher,
	th domain.ThemeDetector,
	images domain.ImageProcessor,
	hooks domain.HookRunner,
	renderer *render.Renderer,
) *coordinator.Coordinator {
	return coordinator.New(logger, tracker, sh, sh, art, th, images, hooks, renderer, coordinator.Options{
		Actions:     cfg.Actions,
		Channel:     cfg.ChannelSettings(),
		Debounce:    cfg.Debounce,
		OpenOnClick: cfg.OpenOnClick,
	})
}

func newControl(logger *zap.Logger, coord *coordinator.Coordinator) (*control.Service, error) {
	conn, err := control.DialSessionBus()
	if err != nil {
		return nil, err
	}
	return control.NewService(logger, conn, coord), nil
}

func newSupervisor(logger *zap.Logger, tracker *mpris.Tracker, coord *coordinator.Coordinator) *engine.Supervisor {
	return engine.NewSupervisor(logger, tracker, coord)
}

// registerHooks sets up application lifecycle hooks.
// Hooks stop in reverse order: the notification is removed while the
// shell connection is still open.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	sh *shell.Shell,
	tracker *mpris.Tracker,
	ctl *control.Service,
	sup *engine.Supervisor,
) {
	// OnStart contexts end once startup completes; long-running loops get their own
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := sh.Start(runCtx); err != nil && runCtx.Err() == nil {
					logger.Error("Notification shell stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return sh.Stop(ctx)
		},
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := tracker.Start(runCtx); err != nil && runCtx.Err() == nil {
					logger.Error("MPRIS tracker stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return tracker.Stop(ctx)
		},
	})

	lc.Append(fx.Hook{
		OnStart: ctl.Start,
		OnStop:  ctl.Stop,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("mprisnotify daemon started")
			return sup.Start(runCtx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			err := sup.Stop(ctx)
			cancel()
			return err
		},
	})
}
